package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name               string
		total              int64
		page, perPage      int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 20, 0, false, false},
		{"single partial page", 7, 1, 20, 1, false, false},
		{"first of many", 45, 1, 20, 3, true, false},
		{"middle", 45, 2, 20, 3, true, true},
		{"last", 45, 3, 20, 3, false, true},
		{"exact multiple", 40, 2, 20, 2, false, true},
		{"zero per page", 10, 1, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNext)
			assert.Equal(t, tt.wantPrev, meta.HasPrev)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.perPage, meta.PerPage)
		})
	}
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		body, err := json.Marshal(NewSuccessResponseWithMeta([]int{1}, NewMeta(1, 1, 20)))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": true,
			"data": [1],
			"meta": {"current_page":1,"per_page":20,"total":1,"total_pages":1,"has_next":false,"has_prev":false}
		}`, string(body))
	})

	t.Run("validation error carries details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
			{Field: "sort_order", Message: "Must be one of: asc desc"},
		})
		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": false,
			"error": {
				"code": "ERR_VALIDATION",
				"message": "Request validation failed",
				"request_id": "req-1",
				"details": [{"field":"sort_order","message":"Must be one of: asc desc"}]
			}
		}`, string(body))
	})

	t.Run("plain error omits request id", func(t *testing.T) {
		body, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "gone"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"gone"}}`, string(body))
	})
}

func TestProductDetailRequest_WantsPerCombination(t *testing.T) {
	yes, no := true, false
	assert.True(t, ProductDetailRequest{}.WantsPerCombination())
	assert.True(t, ProductDetailRequest{PerCombination: &yes}.WantsPerCombination())
	assert.False(t, ProductDetailRequest{PerCombination: &no}.WantsPerCombination())
}
