package catalog

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductInvalidator evicts one product's cached snapshot
type ProductInvalidator interface {
	InvalidateProduct(ctx context.Context, storeID, productID int64) error
}

// SnapshotInvalidationHandler evicts cached snapshots when catalog
// management reports a product change
type SnapshotInvalidationHandler struct {
	invalidator ProductInvalidator
	logger      *zap.Logger
}

// NewSnapshotInvalidationHandler creates the handler
func NewSnapshotInvalidationHandler(invalidator ProductInvalidator, logger *zap.Logger) *SnapshotInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotInvalidationHandler{invalidator: invalidator, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *SnapshotInvalidationHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductChanged, catalog.EventTypeProductRemoved}
}

// Handle implements shared.EventHandler
func (h *SnapshotInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	productEvent, ok := event.(catalog.ProductEvent)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventType())
	}

	storeID, productID := productEvent.StoreID(), productEvent.TargetProductID()
	if err := h.invalidator.InvalidateProduct(ctx, storeID, productID); err != nil {
		return fmt.Errorf("invalidate product %d: %w", productID, err)
	}

	h.logger.Debug("snapshot invalidated",
		zap.String("event_type", event.EventType()),
		zap.Int64("store_id", storeID),
		zap.Int64("product_id", productID),
	)
	return nil
}

var _ shared.EventHandler = (*SnapshotInvalidationHandler)(nil)
