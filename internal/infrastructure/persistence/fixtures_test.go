package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testStoreID  int64 = 1
	otherStoreID int64 = 2

	catShirts int64 = 1
	catMugs   int64 = 2

	axisSize  int64 = 1
	axisColor int64 = 2

	optSmall  int64 = 10
	optMedium int64 = 11
	optRed    int64 = 20
	optBlue   int64 = 21

	prodBasicTee    int64 = 100 // combinations, one in stock
	prodMug         int64 = 101 // flat, in stock
	prodSoldOutTee  int64 = 102 // combinations, none available; fallback stock ignored
	prodCap         int64 = 103 // flat, over-reserved
	prodPoloTee     int64 = 104 // flat, negative reserved clamps to zero
	prodInactiveTee int64 = 105 // inactive
	prodOtherStore  int64 = 200
)

// newMockGormDB opens GORM over sqlmock with the postgres dialector
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(newPostgresDialector(mockDB), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newPostgresDialector(conn *sql.DB) gorm.Dialector {
	return postgres.New(postgres.Config{
		Conn:       conn,
		DriverName: "postgres",
	})
}

// setupCatalogTestDB opens an in-memory sqlite database with the catalog schema
func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// :memory: databases are per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.CategoryModel{},
		&models.ProductModel{},
		&models.VariationModel{},
		&models.VariationOptionModel{},
		&models.CombinationModel{},
	)
	require.NoError(t, err)

	return db
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func overridePrice(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: money(s), Valid: true}
}

func combinationModel(id, productID int64, qty, reserved *int, active bool, slots ...[2]int64) models.CombinationModel {
	m := models.CombinationModel{
		ID:          id,
		ProductID:   productID,
		Quantity:    qty,
		ReservedQty: reserved,
		Active:      models.YesNo(active),
	}
	for i, s := range slots {
		axis, opt := int64Ptr(s[0]), int64Ptr(s[1])
		switch i {
		case 0:
			m.Variation1ID, m.Option1ID = axis, opt
		case 1:
			m.Variation2ID, m.Option2ID = axis, opt
		case 2:
			m.Variation3ID, m.Option3ID = axis, opt
		}
	}
	return m
}

// seedCatalog loads a small storefront: two stores, tees with and without
// combinations, flat products with assorted stock states
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []models.CategoryModel{
		{ID: catShirts, StoreID: testStoreID, Name: "Camisetas", Active: true},
		{ID: catMugs, StoreID: testStoreID, Name: "Canecas", Active: true},
		{ID: 3, StoreID: otherStoreID, Name: "Camisetas", Active: true},
	}
	require.NoError(t, db.Create(&categories).Error)

	variations := []models.VariationModel{
		{ID: axisSize, StoreID: testStoreID, Name: "Tamanho"},
		{ID: axisColor, StoreID: testStoreID, Name: "Cor"},
	}
	require.NoError(t, db.Create(&variations).Error)

	options := []models.VariationOptionModel{
		{ID: optSmall, VariationID: axisSize, Name: "P"},
		{ID: optMedium, VariationID: axisSize, Name: "M"},
		{ID: optRed, VariationID: axisColor, Name: "Vermelho"},
		{ID: optBlue, VariationID: axisColor, Name: "Azul"},
	}
	require.NoError(t, db.Create(&options).Error)

	products := []models.ProductModel{
		{ID: prodBasicTee, StoreID: testStoreID, Name: "Camiseta Básica", CategoryID: int64Ptr(catShirts),
			BasePrice: money("49.90"), HasVariations: true, Active: true},
		{ID: prodMug, StoreID: testStoreID, Name: "Caneca", CategoryID: int64Ptr(catMugs),
			BasePrice: money("19.90"), StockQty: 10, ReservedQty: intPtr(3), Active: true},
		{ID: prodSoldOutTee, StoreID: testStoreID, Name: "Camiseta Esgotada", CategoryID: int64Ptr(catShirts),
			BasePrice: money("39.90"), StockQty: 50, HasVariations: true, Active: true},
		{ID: prodCap, StoreID: testStoreID, Name: "Boné", CategoryID: int64Ptr(catShirts),
			BasePrice: money("29.90"), StockQty: 2, ReservedQty: intPtr(5), Active: true},
		{ID: prodPoloTee, StoreID: testStoreID, Name: "Camiseta Polo", Description: "Algodão pima",
			CategoryID: int64Ptr(catShirts), BasePrice: money("89.90"), StockQty: 7, ReservedQty: intPtr(-2), Active: true},
		{ID: prodInactiveTee, StoreID: testStoreID, Name: "Camiseta Inativa", CategoryID: int64Ptr(catShirts),
			BasePrice: money("9.90"), StockQty: 10, Active: false},
		{ID: prodOtherStore, StoreID: otherStoreID, Name: "Camiseta Outra Loja", CategoryID: int64Ptr(3),
			BasePrice: money("59.90"), StockQty: 5, Active: true},
	}
	require.NoError(t, db.Create(&products).Error)

	size := func(opt int64) [2]int64 { return [2]int64{axisSize, opt} }
	color := func(opt int64) [2]int64 { return [2]int64{axisColor, opt} }

	blueMedium := combinationModel(1004, prodBasicTee, intPtr(3), nil, false, size(optMedium), color(optBlue))
	blueMedium.PriceOverride = overridePrice("59.90")
	blueMedium.Image = strPtr("camiseta-m-azul.jpg")

	combos := []models.CombinationModel{
		combinationModel(1001, prodBasicTee, intPtr(0), intPtr(0), true, size(optSmall), color(optRed)),
		combinationModel(1002, prodBasicTee, intPtr(2), intPtr(0), true, size(optSmall), color(optBlue)),
		combinationModel(1003, prodBasicTee, intPtr(5), intPtr(5), true, size(optMedium), color(optRed)),
		blueMedium,
		combinationModel(1021, prodSoldOutTee, intPtr(4), nil, false, size(optSmall)),
		combinationModel(1022, prodSoldOutTee, intPtr(1), intPtr(1), true, size(optMedium)),
		// axis row missing: name resolves empty
		combinationModel(1023, prodSoldOutTee, nil, nil, true, [2]int64{99, optSmall}),
	}
	require.NoError(t, db.Create(&combos).Error)
}
