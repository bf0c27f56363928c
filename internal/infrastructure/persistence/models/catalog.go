package models

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	TimestampModel
	ID      int64  `gorm:"column:id;primaryKey"`
	StoreID int64  `gorm:"column:store_id;not null;index"`
	Name    string `gorm:"column:name;type:varchar(120);not null"`
	Active  YesNo  `gorm:"column:active;not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel is the persistence model for store products
type ProductModel struct {
	TimestampModel
	ID            int64           `gorm:"column:id;primaryKey"`
	StoreID       int64           `gorm:"column:store_id;not null;index:idx_products_store_active,priority:1"`
	StoreSeq      int64           `gorm:"column:store_seq;not null"`
	Reference     string          `gorm:"column:reference;type:varchar(60)"`
	Name          string          `gorm:"column:name;type:varchar(200);not null"`
	Description   string          `gorm:"column:description;type:text"`
	CategoryID    *int64          `gorm:"column:category_id;index"`
	BasePrice     decimal.Decimal `gorm:"column:base_price;type:decimal(10,2);not null"`
	StockQty      int             `gorm:"column:stock_qty;not null"`
	ReservedQty   *int            `gorm:"column:reserved_qty"`
	MinStock      int             `gorm:"column:min_stock;not null"`
	TrackStock    YesNo           `gorm:"column:track_stock;not null"`
	HasVariations YesNo           `gorm:"column:has_variations;not null"`
	FreeShipping  YesNo           `gorm:"column:free_shipping;not null"`
	Active        YesNo           `gorm:"column:active;not null;index:idx_products_store_active,priority:2"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ProductRow is a product joined with its category name
type ProductRow struct {
	ProductModel
	CategoryName *string `gorm:"column:category_name"`
}

// ToDomain converts the row to a catalog Product
func (m *ProductRow) ToDomain() catalog.Product {
	p := catalog.Product{
		ID:            m.ID,
		StoreID:       m.StoreID,
		StoreSeq:      m.StoreSeq,
		Reference:     m.Reference,
		Name:          m.Name,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		BasePrice:     m.BasePrice,
		StockQty:      m.StockQty,
		ReservedQty:   derefInt(m.ReservedQty),
		MinStock:      m.MinStock,
		TrackStock:    m.TrackStock.Bool(),
		HasVariations: m.HasVariations.Bool(),
		FreeShipping:  m.FreeShipping.Bool(),
		Active:        m.Active.Bool(),
		CreatedAt:     m.CreatedAt,
	}
	if m.CategoryName != nil {
		p.CategoryName = *m.CategoryName
	}
	return p
}

// VariationModel is a variation axis (e.g. "Tamanho")
type VariationModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	StoreID int64  `gorm:"column:store_id;not null;index"`
	Name    string `gorm:"column:name;type:varchar(80);not null"`
}

// TableName returns the table name for GORM
func (VariationModel) TableName() string {
	return "variations"
}

// VariationOptionModel is one value of a variation axis
type VariationOptionModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	VariationID int64  `gorm:"column:variation_id;not null;index"`
	Name        string `gorm:"column:name;type:varchar(80);not null"`
}

// TableName returns the table name for GORM
func (VariationOptionModel) TableName() string {
	return "variation_options"
}

// CombinationModel is one sellable combination of up to three options
type CombinationModel struct {
	ID            int64               `gorm:"column:id;primaryKey"`
	ProductID     int64               `gorm:"column:product_id;not null;index"`
	Variation1ID  *int64              `gorm:"column:variation1_id"`
	Option1ID     *int64              `gorm:"column:option1_id"`
	Variation2ID  *int64              `gorm:"column:variation2_id"`
	Option2ID     *int64              `gorm:"column:option2_id"`
	Variation3ID  *int64              `gorm:"column:variation3_id"`
	Option3ID     *int64              `gorm:"column:option3_id"`
	Quantity      *int                `gorm:"column:quantity"`
	ReservedQty   *int                `gorm:"column:reserved_qty"`
	MinStock      *int                `gorm:"column:min_stock"`
	PriceOverride decimal.NullDecimal `gorm:"column:price_override;type:decimal(10,2)"`
	Image         *string             `gorm:"column:image;type:varchar(255)"`
	Active        YesNo               `gorm:"column:active;not null"`
}

// TableName returns the table name for GORM
func (CombinationModel) TableName() string {
	return "product_variation_combinations"
}

// CombinationRow is a combination joined with its axis and option names
type CombinationRow struct {
	CombinationModel
	Variation1Name *string `gorm:"column:variation1_name"`
	Option1Name    *string `gorm:"column:option1_name"`
	Variation2Name *string `gorm:"column:variation2_name"`
	Option2Name    *string `gorm:"column:option2_name"`
	Variation3Name *string `gorm:"column:variation3_name"`
	Option3Name    *string `gorm:"column:option3_name"`
}

// ToDomain converts the row to a catalog Combination. Slots whose axis id is
// NULL are left out.
func (m *CombinationRow) ToDomain() catalog.Combination {
	c := catalog.Combination{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Quantity:    derefInt(m.Quantity),
		ReservedQty: derefInt(m.ReservedQty),
		MinStock:    derefInt(m.MinStock),
		Active:      m.Active.Bool(),
	}
	if m.PriceOverride.Valid {
		c.PriceOverride = m.PriceOverride.Decimal
	}
	if m.Image != nil {
		c.Image = *m.Image
	}

	raw := [catalog.MaxVariationAxes]struct {
		axisID, optionID     *int64
		axisName, optionName *string
	}{
		{m.Variation1ID, m.Option1ID, m.Variation1Name, m.Option1Name},
		{m.Variation2ID, m.Option2ID, m.Variation2Name, m.Option2Name},
		{m.Variation3ID, m.Option3ID, m.Variation3Name, m.Option3Name},
	}
	for _, s := range raw {
		if s.axisID == nil {
			continue
		}
		c.Slots = append(c.Slots, catalog.VariationSlot{
			AxisID:     *s.axisID,
			AxisName:   derefString(s.axisName),
			OptionID:   derefInt64(s.optionID),
			OptionName: derefString(s.optionName),
		})
	}
	return c
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
