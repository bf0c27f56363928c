// Package testutil provides common test utilities for the storefront API:
// sqlmock-backed GORM databases, gin test contexts carrying a store scope and
// assertions over the JSON response envelope.
package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestStoreID is the store used by tests that need just one
const TestStoreID int64 = 1

// TestJWTSecret signs tokens produced by StoreToken
const TestJWTSecret = "storefront-test-secret-32-bytes!!"

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a mock postgres database closed on test cleanup
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "Failed to open GORM connection")

	m := &MockDB{DB: gormDB, Mock: mock, SqlDB: mockDB}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// Close closes the mock database connection.
func (m *MockDB) Close() error {
	return m.SqlDB.Close()
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// TestContext wraps a Gin test context with HTTP recorder.
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

// NewTestContext creates a Gin test context for a GET of path
func NewTestContext(t *testing.T, path string) *TestContext {
	t.Helper()

	if path == "" {
		path = "/"
	}
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)

	return &TestContext{Context: c, Recorder: w, Engine: engine}
}

// SetRequestID sets the request id the way the RequestID middleware does
func (tc *TestContext) SetRequestID(id string) {
	tc.Context.Set(logger.GinRequestIDKey, id)
}

// SetStoreID scopes the request to a store the way StoreScope does
func (tc *TestContext) SetStoreID(id int64) {
	tc.Context.Set(logger.GinStoreIDKey, id)
}

// SetParam adds a path parameter
func (tc *TestContext) SetParam(key, value string) {
	tc.Context.Params = append(tc.Context.Params, gin.Param{Key: key, Value: value})
}

// SetHeader sets a header on the request.
func (tc *TestContext) SetHeader(key, value string) {
	tc.Context.Request.Header.Set(key, value)
}

// ResponseBody returns the response body as bytes.
func (tc *TestContext) ResponseBody() []byte {
	return tc.Recorder.Body.Bytes()
}

// ResponseCode returns the HTTP status code.
func (tc *TestContext) ResponseCode() int {
	return tc.Recorder.Code
}

// TestJWTConfig returns the JWT settings matching StoreToken
func TestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     TestJWTSecret,
		Issuer:     "storefront-test",
		Expiration: time.Hour,
	}
}

// StoreToken returns a bearer header value for storeID signed with TestJWTConfig
func StoreToken(t *testing.T, storeID int64) string {
	t.Helper()

	token, _, err := auth.NewJWTService(TestJWTConfig()).GenerateToken(storeID)
	require.NoError(t, err, "Failed to sign store token")
	return "Bearer " + token
}

// ContextWithTimeout creates a context with a timeout for tests.
func ContextWithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}
