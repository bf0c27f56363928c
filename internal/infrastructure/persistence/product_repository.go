package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// clampedReserved treats negative reserved counts as zero, matching
// catalog.AvailableQuantity. CASE keeps it portable across postgres and sqlite.
const clampedReserved = "CASE WHEN COALESCE(%[1]s.reserved_qty, 0) < 0 THEN 0 ELSE COALESCE(%[1]s.reserved_qty, 0) END"

// purchasableCondition mirrors catalog.ResolveAvailability in SQL: an active
// combination with stock left, or no combinations at all and fallback stock left.
var purchasableCondition = fmt.Sprintf(`(EXISTS (
	SELECT 1 FROM product_variation_combinations pvc
	WHERE pvc.product_id = products.id AND pvc.active = ?
	AND COALESCE(pvc.quantity, 0) - %s > 0
) OR (NOT EXISTS (
	SELECT 1 FROM product_variation_combinations pvc_any
	WHERE pvc_any.product_id = products.id
) AND products.stock_qty - %s > 0))`,
	fmt.Sprintf(clampedReserved, "pvc"),
	fmt.Sprintf(clampedReserved, "products"),
)

const productColumns = "products.*, categories.name AS category_name"

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds an active product of the store by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, storeID, productID int64) (*catalog.Product, error) {
	if storeID <= 0 || productID <= 0 {
		return nil, shared.ErrNotFound
	}

	var row models.ProductRow
	err := r.withCategory(r.activeProducts(ctx, storeID)).
		Where("products.id = ?", productID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	product := row.ToDomain()
	return &product, nil
}

// FindPurchasable lists the store's purchasable products matching the filter
func (r *GormProductRepository) FindPurchasable(ctx context.Context, storeID int64, filter catalog.ProductFilter) ([]catalog.Product, error) {
	if storeID <= 0 {
		return nil, shared.ErrInvalidInput
	}

	filter.Filter = filter.Filter.Normalize(shared.MaxPageSize)
	query := r.applyFilter(r.purchasableProducts(ctx, storeID), filter)
	query = r.applyOrder(r.withCategory(query), filter.Filter).
		Offset(filter.Offset()).
		Limit(filter.PageSize)

	var rows []models.ProductRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// CountPurchasable counts the store's purchasable products matching the filter
func (r *GormProductRepository) CountPurchasable(ctx context.Context, storeID int64, filter catalog.ProductFilter) (int64, error) {
	if storeID <= 0 {
		return 0, shared.ErrInvalidInput
	}

	var total int64
	if err := r.applyFilter(r.purchasableProducts(ctx, storeID), filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindRelated lists purchasable products of the same category, excluding
// productID itself, in random order
func (r *GormProductRepository) FindRelated(ctx context.Context, storeID, productID, categoryID int64, limit int) ([]catalog.Product, error) {
	if storeID <= 0 {
		return nil, shared.ErrInvalidInput
	}
	if categoryID <= 0 || limit <= 0 {
		return []catalog.Product{}, nil
	}

	var rows []models.ProductRow
	err := r.withCategory(r.purchasableProducts(ctx, storeID)).
		Where("products.category_id = ? AND products.id <> ?", categoryID, productID).
		Order("RANDOM()").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

func (r *GormProductRepository) activeProducts(ctx context.Context, storeID int64) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	return StoreScope("products", storeID)(query).
		Where("products.active = ?", models.FlagYes)
}

func (r *GormProductRepository) purchasableProducts(ctx context.Context, storeID int64) *gorm.DB {
	return r.activeProducts(ctx, storeID).Where(purchasableCondition, models.FlagYes)
}

func (r *GormProductRepository) withCategory(query *gorm.DB) *gorm.DB {
	return query.
		Select(productColumns).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

// applyFilter applies category and search conditions
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"(LOWER(products.name) LIKE ? OR LOWER(COALESCE(products.description, '')) LIKE ?)",
			pattern, pattern,
		)
	}
	return query
}

// applyOrder applies a whitelisted ordering with id as tie-breaker
func (r *GormProductRepository) applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
	dir := ValidateSortOrder(filter.OrderDir, "ASC")
	query = query.Order(column + " " + dir)
	if column != ProductSortFields["id"] {
		query = query.Order("products.id ASC")
	}
	return query
}

func toDomainProducts(rows []models.ProductRow) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
