package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const storeTestSecret = "store-scope-test-secret-32-chars!"

func newStoreRouter(t *testing.T, allowHeader bool) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	svc := auth.NewJWTService(config.JWTConfig{
		Secret:     storeTestSecret,
		Issuer:     "storefront-test",
		Expiration: time.Hour,
	})

	router := gin.New()
	router.Use(RequestID(), StoreScope(StoreScopeConfig{JWTService: svc, AllowStoreHeader: allowHeader}))
	router.GET("/test", func(c *gin.Context) {
		storeID, ok := GetStoreID(c)
		require.True(t, ok)
		assert.Equal(t, storeID, logger.GetStoreID(c.Request.Context()))
		c.String(http.StatusOK, strconv.FormatInt(storeID, 10))
	})
	return router, svc
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestStoreScope_Token(t *testing.T) {
	router, svc := newStoreRouter(t, false)
	token, _, err := svc.GenerateToken(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestStoreScope_Rejections(t *testing.T) {
	router, _ := newStoreRouter(t, false)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		StoreID: 42,
	}).SignedString([]byte(storeTestSecret))
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode string
	}{
		{"no credentials", nil, dto.ErrCodeStoreRequired},
		{"not bearer", map[string]string{AuthHeaderKey: "Basic abc"}, dto.ErrCodeTokenInvalid},
		{"empty bearer", map[string]string{AuthHeaderKey: "Bearer "}, dto.ErrCodeTokenInvalid},
		{"garbage token", map[string]string{AuthHeaderKey: "Bearer nope"}, dto.ErrCodeTokenInvalid},
		{"expired token", map[string]string{AuthHeaderKey: "Bearer " + expired}, dto.ErrCodeTokenExpired},
		{"header fallback disabled", map[string]string{StoreHeaderKey: "7"}, dto.ErrCodeStoreRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestStoreScope_HeaderFallback(t *testing.T) {
	router, _ := newStoreRouter(t, true)

	t.Run("accepts positive store id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(StoreHeaderKey, "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "7", w.Body.String())
	})

	t.Run("rejects malformed store id", func(t *testing.T) {
		for _, v := range []string{"0", "-3", "abc"} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(StoreHeaderKey, v)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, v)
		}
	})

	t.Run("invalid token is not bypassed by header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, "Bearer nope")
		req.Header.Set(StoreHeaderKey, "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, w))
	})
}

func TestStoreScope_EnrichesRequestLogger(t *testing.T) {
	svc := auth.NewJWTService(config.JWTConfig{Secret: storeTestSecret, Expiration: time.Hour})
	router := gin.New()
	router.Use(
		RequestID(),
		logger.GinMiddleware(zap.NewNop()),
		StoreScope(StoreScopeConfig{JWTService: svc, AllowStoreHeader: true}),
	)
	router.GET("/test", func(c *gin.Context) {
		assert.Same(t, logger.GetGinLogger(c), logger.FromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(StoreHeaderKey, "9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStoreID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, ok := GetStoreID(c)
	assert.False(t, ok)
	assert.Zero(t, id)
}
