package integration

import (
	"context"
	"os"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain terminates the shared container after the package's tests
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

const (
	storeA int64 = 1
	storeB int64 = 2
)

func intPtr(v int) *int { return &v }

type catalogFixture struct {
	clothing    int64
	tee         int64 // variations, one sized combination left
	soldOutTee  int64 // variations, every combination sold out
	mug         int64 // no combinations, fallback stock
	reservedMug int64 // no combinations, fallback fully reserved
	inactiveCap int64 // combinations blocked by inactive flag
	otherStore  int64
	sizeAxis    int64
	sizes       []int64
}

func seedCatalog(tdb *TestDB) catalogFixture {
	var f catalogFixture
	f.clothing = tdb.CreateCategory(storeA, "Clothing")
	f.sizeAxis, f.sizes = tdb.CreateAxis(storeA, "Tamanho", "P", "M", "G")

	f.tee = tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Camiseta Azul", Description: "Algodão", CategoryID: &f.clothing, BasePrice: "59.90", HasVariations: true})
	tdb.CreateCombination(CombinationSeed{ProductID: f.tee, Axis1: f.sizeAxis, Opt1: f.sizes[0], Quantity: 0})
	tdb.CreateCombination(CombinationSeed{ProductID: f.tee, Axis1: f.sizeAxis, Opt1: f.sizes[1], Quantity: 3, ReservedQty: 1, PriceOverride: "64.90"})

	f.soldOutTee = tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Camiseta Preta", CategoryID: &f.clothing, BasePrice: "59.90", HasVariations: true})
	tdb.CreateCombination(CombinationSeed{ProductID: f.soldOutTee, Axis1: f.sizeAxis, Opt1: f.sizes[0], Quantity: 2, ReservedQty: 2})

	f.mug = tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Caneca", CategoryID: &f.clothing, BasePrice: "25.00", StockQty: 4, ReservedQty: intPtr(-3)})
	f.reservedMug = tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Caneca Reservada", BasePrice: "25.00", StockQty: 4, ReservedQty: intPtr(4)})

	f.inactiveCap = tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Boné", CategoryID: &f.clothing, BasePrice: "39.00", StockQty: 10})
	tdb.CreateCombination(CombinationSeed{ProductID: f.inactiveCap, Axis1: f.sizeAxis, Opt1: f.sizes[2], Quantity: 5, Inactive: true})

	f.otherStore = tdb.CreateProduct(ProductSeed{StoreID: storeB, Name: "Camiseta Azul", BasePrice: "10.00", StockQty: 10})
	tdb.CreateProduct(ProductSeed{StoreID: storeA, Name: "Inativo", BasePrice: "1.00", StockQty: 10, Inactive: true})
	return f
}

func TestProductRepository_Postgres(t *testing.T) {
	tdb := NewSharedTestDB(t)
	f := seedCatalog(tdb)
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	t.Run("find by id is store scoped", func(t *testing.T) {
		product, err := repo.FindByID(ctx, storeA, f.tee)
		require.NoError(t, err)
		assert.Equal(t, "Camiseta Azul", product.Name)
		assert.Equal(t, "Clothing", product.CategoryName)
		assert.True(t, product.HasVariations)
		assert.Equal(t, "59.9", product.BasePrice.String())

		_, err = repo.FindByID(ctx, storeB, f.tee)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("purchasable listing follows combination then fallback rules", func(t *testing.T) {
		products, err := repo.FindPurchasable(ctx, storeA, catalog.ProductFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)

		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Camiseta Azul", "Caneca"}, names)

		total, err := repo.CountPurchasable(ctx, storeA, catalog.ProductFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("search is case insensitive over name and description", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.DefaultFilter()}
		filter.Search = "ALGODÃO"

		products, err := repo.FindPurchasable(ctx, storeA, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, f.tee, products[0].ID)
	})

	t.Run("price ordering descending", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.DefaultFilter(), CategoryID: &f.clothing}
		filter.OrderBy = "price"
		filter.OrderDir = "desc"

		products, err := repo.FindPurchasable(ctx, storeA, filter)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, f.tee, products[0].ID)
		assert.Equal(t, f.mug, products[1].ID)
	})

	t.Run("related excludes the product itself", func(t *testing.T) {
		related, err := repo.FindRelated(ctx, storeA, f.tee, f.clothing, 4)
		require.NoError(t, err)
		require.Len(t, related, 1)
		assert.Equal(t, f.mug, related[0].ID)
	})
}

func TestCombinationRepository_Postgres(t *testing.T) {
	tdb := NewSharedTestDB(t)
	f := seedCatalog(tdb)
	repo := persistence.NewGormCombinationRepository(tdb.DB)
	ctx := context.Background()

	combos, err := repo.FindByProductID(ctx, f.tee)
	require.NoError(t, err)
	require.Len(t, combos, 2)

	assert.Less(t, combos[0].ID, combos[1].ID)
	assert.Equal(t, "Tamanho", combos[1].Slots[0].AxisName)
	assert.Equal(t, "M", combos[1].Slots[0].OptionName)
	assert.Equal(t, 2, combos[1].Available())
	assert.Equal(t, "64.9", combos[1].PriceOverride.String())
	assert.True(t, combos[1].Active)

	grouped, err := repo.FindByProductIDs(ctx, []int64{f.tee, f.soldOutTee, f.mug, f.inactiveCap})
	require.NoError(t, err)
	assert.Len(t, grouped[f.tee], 2)
	assert.Len(t, grouped[f.soldOutTee], 1)
	assert.NotContains(t, grouped, f.mug)
	require.Len(t, grouped[f.inactiveCap], 1)
	assert.False(t, grouped[f.inactiveCap][0].Active)
}
