package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const combinationColumns = `c.*,
	v1.name AS variation1_name, o1.name AS option1_name,
	v2.name AS variation2_name, o2.name AS option2_name,
	v3.name AS variation3_name, o3.name AS option3_name`

// GormCombinationRepository implements catalog.CombinationRepository using GORM
type GormCombinationRepository struct {
	db *gorm.DB
}

// NewGormCombinationRepository creates a new GormCombinationRepository
func NewGormCombinationRepository(db *gorm.DB) *GormCombinationRepository {
	return &GormCombinationRepository{db: db}
}

// FindByProductID returns every combination of a product ordered by id
func (r *GormCombinationRepository) FindByProductID(ctx context.Context, productID int64) ([]catalog.Combination, error) {
	var rows []models.CombinationRow
	err := r.joined(ctx).
		Where("c.product_id = ?", productID).
		Order("c.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	combos := make([]catalog.Combination, len(rows))
	for i := range rows {
		combos[i] = rows[i].ToDomain()
	}
	return combos, nil
}

// FindByProductIDs loads the combinations of several products in one query
func (r *GormCombinationRepository) FindByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]catalog.Combination, error) {
	result := make(map[int64][]catalog.Combination)
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []models.CombinationRow
	err := r.joined(ctx).
		Where("c.product_id IN ?", productIDs).
		Order("c.product_id ASC, c.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		combo := rows[i].ToDomain()
		result[combo.ProductID] = append(result[combo.ProductID], combo)
	}
	return result, nil
}

func (r *GormCombinationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(models.CombinationModel{}.TableName() + " AS c").
		Select(combinationColumns).
		Joins("LEFT JOIN variations v1 ON v1.id = c.variation1_id").
		Joins("LEFT JOIN variation_options o1 ON o1.id = c.option1_id").
		Joins("LEFT JOIN variations v2 ON v2.id = c.variation2_id").
		Joins("LEFT JOIN variation_options o2 ON o2.id = c.option2_id").
		Joins("LEFT JOIN variations v3 ON v3.id = c.variation3_id").
		Joins("LEFT JOIN variation_options o3 ON o3.id = c.option3_id")
}

// Ensure GormCombinationRepository implements catalog.CombinationRepository
var _ catalog.CombinationRepository = (*GormCombinationRepository)(nil)
