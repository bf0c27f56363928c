package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		wantStatus   int
		wantDatabase string
	}{
		{"database up", nil, http.StatusOK, "up"},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockPinger)
			db.On("Ping", mock.Anything).Return(tt.pingErr)

			router := gin.New()
			router.GET("/health", NewHealthHandler(db, "memory", "test").Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			data := decodeBody(t, w)["data"].(map[string]any)
			assert.Equal(t, tt.wantDatabase, data["database"])
			assert.Equal(t, "memory", data["cache"])
			assert.Equal(t, "test", data["version"])
			db.AssertExpectations(t)
		})
	}
}
