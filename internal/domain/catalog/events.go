package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types published by catalog management when a product's read model changes
const (
	EventTypeProductChanged = "ProductChanged"
	EventTypeProductRemoved = "ProductRemoved"
)

// What changed on a product. Informational only; every change evicts the snapshot.
const (
	ChangeStock      = "stock"
	ChangePrice      = "price"
	ChangeStatus     = "status"
	ChangeVariations = "variations"
)

// ProductChangedEvent announces that a product's stock, price, status or
// combinations were written elsewhere
type ProductChangedEvent struct {
	shared.BaseDomainEvent
	ProductID int64    `json:"product_id"`
	Changes   []string `json:"changes,omitempty"`
}

// NewProductChangedEvent creates a ProductChangedEvent
func NewProductChangedEvent(storeID, productID int64, changes ...string) *ProductChangedEvent {
	return &ProductChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductChanged, storeID),
		ProductID:       productID,
		Changes:         changes,
	}
}

// ProductRemovedEvent announces that a product was deleted or deactivated
type ProductRemovedEvent struct {
	shared.BaseDomainEvent
	ProductID int64 `json:"product_id"`
}

// NewProductRemovedEvent creates a ProductRemovedEvent
func NewProductRemovedEvent(storeID, productID int64) *ProductRemovedEvent {
	return &ProductRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRemoved, storeID),
		ProductID:       productID,
	}
}

// ProductEvent is implemented by events that target a single product
type ProductEvent interface {
	shared.DomainEvent
	TargetProductID() int64
}

// TargetProductID implements ProductEvent
func (e *ProductChangedEvent) TargetProductID() int64 { return e.ProductID }

// TargetProductID implements ProductEvent
func (e *ProductRemovedEvent) TargetProductID() int64 { return e.ProductID }
