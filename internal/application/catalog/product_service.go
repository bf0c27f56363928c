package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Default limits for related products
const (
	DefaultRelatedLimit = 4
	MaxRelatedLimit     = 12
)

// ErrProductNotFound is returned when the store has no active product with the id
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")

// ProductService resolves storefront product pages and listings
type ProductService struct {
	productRepo     catalog.ProductRepository
	combinationRepo catalog.CombinationRepository
	formatter       *PriceFormatter
	currency        valueobject.Currency
	cache           catalog.SnapshotCache
	cacheTTL        time.Duration
	maxPageSize     int
	relatedLimit    int
	maxRelatedLimit int
	logger          *zap.Logger
	metrics         *telemetry.CatalogMetrics
}

// ProductServiceOption is a functional option for configuring the service
type ProductServiceOption func(*ProductService)

// WithSnapshotCache enables snapshot caching for product detail reads
func WithSnapshotCache(cache catalog.SnapshotCache, ttl time.Duration) ProductServiceOption {
	return func(s *ProductService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ProductServiceOption {
	return func(s *ProductService) {
		s.logger = logger
	}
}

// WithMetrics records resolutions and cache lookups; nil disables
func WithMetrics(metrics *telemetry.CatalogMetrics) ProductServiceOption {
	return func(s *ProductService) {
		s.metrics = metrics
	}
}

// WithMaxPageSize caps listing page sizes
func WithMaxPageSize(size int) ProductServiceOption {
	return func(s *ProductService) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}

// WithRelatedLimits sets the default and maximum related product counts
func WithRelatedLimits(defaultLimit, maxLimit int) ProductServiceOption {
	return func(s *ProductService) {
		if defaultLimit > 0 {
			s.relatedLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxRelatedLimit = maxLimit
		}
		if s.relatedLimit > s.maxRelatedLimit {
			s.relatedLimit = s.maxRelatedLimit
		}
	}
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	combinationRepo catalog.CombinationRepository,
	formatter *PriceFormatter,
	opts ...ProductServiceOption,
) *ProductService {
	s := &ProductService{
		productRepo:     productRepo,
		combinationRepo: combinationRepo,
		formatter:       formatter,
		maxPageSize:     shared.MaxPageSize,
		relatedLimit:    DefaultRelatedLimit,
		maxRelatedLimit: MaxRelatedLimit,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.currency = valueobject.DefaultCurrency
	if c, err := valueobject.ParseCurrency(formatter.Currency()); err == nil {
		s.currency = c
	}
	return s
}

// GetDetail returns the product page for one product. Active products that
// cannot be bought are returned with Purchasable false.
func (s *ProductService) GetDetail(ctx context.Context, storeID, productID int64, withPerCombination bool) (*ProductDetailResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "get_detail",
		telemetry.AttrStoreID.Int64(storeID), telemetry.AttrProductID.Int64(productID))
	defer span.End()

	snapshot, err := s.cachedSnapshot(ctx, storeID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	res := catalog.Resolve(snapshot, catalog.ResolveOptions{WithPerCombination: withPerCombination})
	s.metrics.RecordResolution(ctx, "detail", res.Availability.Purchasable, len(snapshot.Combinations))
	detail := &ProductDetailResponse{
		ProductSummaryResponse: s.toSummary(snapshot, res),
		TrackStock:             snapshot.Product.TrackStock,
		Variations:             []VariationResponse{},
		Options:                res.Options,
		PerCombination:         res.Availability.PerCombination,
	}
	if snapshot.Product.HasVariations {
		detail.Variations = s.toVariations(snapshot)
	}
	return detail, nil
}

// GetAvailability resolves live purchasability, always bypassing the cache
func (s *ProductService) GetAvailability(ctx context.Context, storeID, productID int64) (*AvailabilityResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "get_availability",
		telemetry.AttrStoreID.Int64(storeID), telemetry.AttrProductID.Int64(productID))
	defer span.End()

	snapshot, err := s.loadSnapshot(ctx, storeID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	availability := catalog.ResolveAvailability(snapshot, true)
	s.metrics.RecordResolution(ctx, "availability", availability.Purchasable, len(snapshot.Combinations))
	return &AvailabilityResponse{
		ProductID:      productID,
		Purchasable:    availability.Purchasable,
		AvailableQty:   catalog.AvailableUnits(snapshot),
		PerCombination: availability.PerCombination,
	}, nil
}

// List returns one page of the store's purchasable products
func (s *ProductService) List(ctx context.Context, storeID int64, query ProductListQuery) (result *ProductListResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "list", telemetry.AttrStoreID.Int64(storeID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	filter := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     query.Page,
			PageSize: query.Limit,
			OrderBy:  query.SortBy,
			OrderDir: query.SortOrder,
			Search:   query.Search,
		}.Normalize(s.maxPageSize),
		CategoryID: query.CategoryID,
	}

	products, err := s.productRepo.FindPurchasable(ctx, storeID, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	total, err := s.productRepo.CountPurchasable(ctx, storeID, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	summaries, err := s.summarize(ctx, "list", products)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(summaries, total, filter.Page, filter.PageSize)
	return &ProductListResult{
		Products:   page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		CategoryID: query.CategoryID,
	}, nil
}

// ListByCategory is List pinned to one category
func (s *ProductService) ListByCategory(ctx context.Context, storeID, categoryID int64, query ProductListQuery) (*ProductListResult, error) {
	if categoryID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category id must be positive")
	}
	query.CategoryID = &categoryID
	return s.List(ctx, storeID, query)
}

// GetRelated returns purchasable products from the same category in random
// order. A limit outside 1..max falls back to the default or the max.
func (s *ProductService) GetRelated(ctx context.Context, storeID, productID int64, limit int) (related []ProductSummaryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "get_related",
		telemetry.AttrStoreID.Int64(storeID), telemetry.AttrProductID.Int64(productID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	product, err := s.productRepo.FindByID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.CategoryID == nil {
		return []ProductSummaryResponse{}, nil
	}

	switch {
	case limit <= 0:
		limit = s.relatedLimit
	case limit > s.maxRelatedLimit:
		limit = s.maxRelatedLimit
	}

	products, err := s.productRepo.FindRelated(ctx, storeID, productID, *product.CategoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("find related products: %w", err)
	}
	return s.summarize(ctx, "related", products)
}

// InvalidateProduct evicts a cached snapshot
func (s *ProductService) InvalidateProduct(ctx context.Context, storeID, productID int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, storeID, productID)
}

// cachedSnapshot reads through the snapshot cache. Cache failures are logged
// and served from the repositories.
func (s *ProductService) cachedSnapshot(ctx context.Context, storeID, productID int64) (catalog.Snapshot, error) {
	if s.cache == nil {
		return s.loadSnapshot(ctx, storeID, productID)
	}

	log := s.logger.With(zap.Int64("store_id", storeID))
	cached, err := s.cache.Get(ctx, storeID, productID)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup(ctx, telemetry.CacheError)
		log.Warn("snapshot cache read failed", zap.Int64("product_id", productID), zap.Error(err))
	case cached != nil:
		s.metrics.RecordCacheLookup(ctx, telemetry.CacheHit)
		return *cached, nil
	default:
		s.metrics.RecordCacheLookup(ctx, telemetry.CacheMiss)
	}

	snapshot, err := s.loadSnapshot(ctx, storeID, productID)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	if err := s.cache.Set(ctx, snapshot, s.cacheTTL); err != nil {
		log.Warn("snapshot cache write failed", zap.Int64("product_id", productID), zap.Error(err))
	}
	return snapshot, nil
}

// loadSnapshot reads the product and its combinations once
func (s *ProductService) loadSnapshot(ctx context.Context, storeID, productID int64) (catalog.Snapshot, error) {
	product, err := s.productRepo.FindByID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return catalog.Snapshot{}, ErrProductNotFound
		}
		return catalog.Snapshot{}, fmt.Errorf("find product: %w", err)
	}

	combos, err := s.combinationRepo.FindByProductID(ctx, product.ID)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("find combinations: %w", err)
	}
	return catalog.NewSnapshot(*product, combos), nil
}

// summarize resolves a page of products with one combination query
func (s *ProductService) summarize(ctx context.Context, operation string, products []catalog.Product) ([]ProductSummaryResponse, error) {
	summaries := make([]ProductSummaryResponse, 0, len(products))
	if len(products) == 0 {
		return summaries, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	combosByProduct, err := s.combinationRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find combinations: %w", err)
	}

	for _, p := range products {
		snapshot := catalog.NewSnapshot(p, combosByProduct[p.ID])
		res := catalog.Resolve(snapshot, catalog.ResolveOptions{})
		s.metrics.RecordResolution(ctx, operation, res.Availability.Purchasable, len(snapshot.Combinations))
		summaries = append(summaries, s.toSummary(snapshot, res))
	}
	return summaries, nil
}

func (s *ProductService) toSummary(snapshot catalog.Snapshot, res catalog.Resolution) ProductSummaryResponse {
	p := snapshot.Product
	return ProductSummaryResponse{
		ID:             p.ID,
		StoreSeq:       p.StoreSeq,
		Reference:      p.Reference,
		Name:           p.Name,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		Price:          s.money(p.BasePrice),
		PriceFormatted: s.formatter.FormatWithSymbol(p.BasePrice),
		PriceRange:     s.toPriceRange(res.PriceRange),
		HasVariations:  p.HasVariations,
		FreeShipping:   p.FreeShipping,
		Purchasable:    res.Availability.Purchasable,
		AvailableQty:   catalog.AvailableUnits(snapshot),
		CreatedAt:      p.CreatedAt,
	}
}

func (s *ProductService) toPriceRange(r catalog.PriceRange) PriceRangeResponse {
	return PriceRangeResponse{
		Min:          s.money(r.Min),
		Max:          s.money(r.Max),
		MinFormatted: s.formatter.FormatWithSymbol(r.Min),
		MaxFormatted: s.formatter.FormatWithSymbol(r.Max),
		Formatted:    s.formatter.FormatRange(r),
		SinglePrice:  r.IsSinglePrice(),
	}
}

func (s *ProductService) toVariations(snapshot catalog.Snapshot) []VariationResponse {
	base := snapshot.Product.BasePrice
	variations := make([]VariationResponse, 0, len(snapshot.Combinations))
	for _, c := range snapshot.Combinations {
		slots := make([]VariationSlotResponse, 0, len(c.Slots))
		for _, slot := range c.Slots {
			if !slot.IsPopulated() {
				continue
			}
			slots = append(slots, VariationSlotResponse{
				AxisID:     slot.AxisID,
				AxisName:   slot.DisplayAxisName(),
				OptionID:   slot.OptionID,
				OptionName: slot.DisplayOptionName(),
			})
		}

		price := c.EffectivePrice(base)
		available := 0
		if c.Active {
			available = c.Available()
		}
		variations = append(variations, VariationResponse{
			ID:             c.ID,
			Slots:          slots,
			Price:          s.money(price),
			PriceFormatted: s.formatter.FormatWithSymbol(price),
			Available:      available,
			MinStock:       c.MinStock,
			Image:          c.Image,
			Active:         c.Active,
		})
	}
	return variations
}

func (s *ProductService) money(amount decimal.Decimal) valueobject.Money {
	m, err := valueobject.NewMoney(amount.Round(2), s.currency)
	if err != nil {
		// currency is validated at construction
		return valueobject.Zero(s.currency)
	}
	return m
}
