// Package integration runs the catalog repositories against a real PostgreSQL
// started with testcontainers. Tests are skipped in -short mode and when no
// container provider is available.
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in the package
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a migrated database connection for one test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	t     *testing.T
}

// NewSharedTestDB returns a connection to the package's shared PostgreSQL
// container, starting and migrating it on first use. Tables are truncated so
// every test starts empty.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()
	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("storefront_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start shared PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		_ = sqlDB.Close()

		sharedContainer = container
		sharedContainerDSN = dsn
	}

	db, sqlDB := connectToDatabase(t, sharedContainerDSN)
	testDB := &TestDB{DB: db, SqlDB: sqlDB, DSN: sharedContainerDSN, t: t}
	testDB.CleanTables()

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return testDB
}

// CleanTables empties every catalog table and resets identities
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	err := tdb.DB.Exec(`TRUNCATE TABLE product_variation_combinations, variation_options,
		variations, products, categories RESTART IDENTITY CASCADE`).Error
	require.NoError(tdb.t, err, "Failed to truncate catalog tables")
}

// CreateCategory inserts an active category and returns its id
func (tdb *TestDB) CreateCategory(storeID int64, name string) int64 {
	tdb.t.Helper()

	var id int64
	err := tdb.DB.Raw(`INSERT INTO categories (store_id, name) VALUES (?, ?) RETURNING id`,
		storeID, name).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create category")
	return id
}

// ProductSeed describes a product row; zero flags default to active, no variations
type ProductSeed struct {
	StoreID       int64
	Name          string
	Description   string
	CategoryID    *int64
	BasePrice     string
	StockQty      int
	ReservedQty   *int
	HasVariations bool
	Inactive      bool
}

// CreateProduct inserts a product and returns its id
func (tdb *TestDB) CreateProduct(seed ProductSeed) int64 {
	tdb.t.Helper()

	price := decimal.Zero
	if seed.BasePrice != "" {
		price = decimal.RequireFromString(seed.BasePrice)
	}

	var id int64
	err := tdb.DB.Raw(`INSERT INTO products
		(store_id, name, description, category_id, base_price, stock_qty, reserved_qty, has_variations, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		seed.StoreID, seed.Name, seed.Description, seed.CategoryID, price,
		seed.StockQty, seed.ReservedQty, flag(seed.HasVariations), flag(!seed.Inactive),
	).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create product")
	return id
}

// CreateAxis inserts a variation axis with its options and returns the axis
// id followed by the option ids in order
func (tdb *TestDB) CreateAxis(storeID int64, name string, options ...string) (int64, []int64) {
	tdb.t.Helper()

	var axisID int64
	err := tdb.DB.Raw(`INSERT INTO variations (store_id, name) VALUES (?, ?) RETURNING id`,
		storeID, name).Scan(&axisID).Error
	require.NoError(tdb.t, err, "Failed to create variation")

	optionIDs := make([]int64, 0, len(options))
	for _, option := range options {
		var optionID int64
		err := tdb.DB.Raw(`INSERT INTO variation_options (variation_id, name) VALUES (?, ?) RETURNING id`,
			axisID, option).Scan(&optionID).Error
		require.NoError(tdb.t, err, "Failed to create variation option")
		optionIDs = append(optionIDs, optionID)
	}
	return axisID, optionIDs
}

// CombinationSeed describes a combination row with up to two axes
type CombinationSeed struct {
	ProductID     int64
	Axis1, Opt1   int64
	Axis2, Opt2   int64
	Quantity      int
	ReservedQty   int
	PriceOverride string
	Inactive      bool
}

// CreateCombination inserts a combination and returns its id
func (tdb *TestDB) CreateCombination(seed CombinationSeed) int64 {
	tdb.t.Helper()

	var override *decimal.Decimal
	if seed.PriceOverride != "" {
		d := decimal.RequireFromString(seed.PriceOverride)
		override = &d
	}

	var id int64
	err := tdb.DB.Raw(`INSERT INTO product_variation_combinations
		(product_id, variation1_id, option1_id, variation2_id, option2_id, quantity, reserved_qty, price_override, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		seed.ProductID, nullID(seed.Axis1), nullID(seed.Opt1), nullID(seed.Axis2), nullID(seed.Opt2),
		seed.Quantity, seed.ReservedQty, override, flag(!seed.Inactive),
	).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create combination")
	return id
}

func flag(b bool) string {
	if b {
		return "S"
	}
	return "N"
}

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, sqlDB
}

// runMigrations applies the embedded migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	m, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}

// CleanupSharedContainer terminates the shared container. Called from TestMain.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
