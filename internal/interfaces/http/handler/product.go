package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// ProductHandler serves the storefront product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ProductListData is the data of a product listing response
type ProductListData struct {
	Products   []catalogapp.ProductSummaryResponse `json:"products"`
	CategoryID *int64                              `json:"category_id,omitempty"`
}

func toListQuery(req dto.ProductListRequest) catalogapp.ProductListQuery {
	return catalogapp.ProductListQuery{
		Page:       req.Page,
		Limit:      req.Limit,
		CategoryID: req.CategoryID,
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
}

func (h *ProductHandler) respondList(c *gin.Context, result *catalogapp.ProductListResult) {
	h.SuccessWithMeta(c, ProductListData{
		Products:   result.Products,
		CategoryID: result.CategoryID,
	}, dto.NewMeta(result.Total, result.Page, result.PageSize))
}

// List godoc
// @Summary      List purchasable products
// @Tags         products
// @Produce      json
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Page size, clamped to 1..100 (default 20)"
// @Param        category_id query int    false "Category filter"
// @Param        search      query string false "Name or description search"
// @Param        sort_by     query string false "id, name, price or created_at"
// @Param        sort_order  query string false "asc or desc"
// @Success      200 {object} dto.Response{data=ProductListData,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req dto.ProductListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.productService.List(c.Request.Context(), storeID, toListQuery(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondList(c, result)
}

// ListByCategory godoc
// @Summary      List purchasable products of a category
// @Tags         products
// @Produce      json
// @Param        category_id path  int true  "Category ID"
// @Param        page        query int false "Page (default 1)"
// @Param        limit       query int false "Page size (default 20)"
// @Success      200 {object} dto.Response{data=ProductListData,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/category/{category_id} [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var uri dto.CategoryURI
	if !h.bindURI(c, &uri) {
		return
	}
	var req dto.ProductListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.productService.ListByCategory(c.Request.Context(), storeID, uri.CategoryID, toListQuery(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondList(c, result)
}

// Get godoc
// @Summary      Get a product page
// @Description  Product with variations, synthesized options, price range and availability
// @Tags         products
// @Produce      json
// @Param        id              path  int  true  "Product ID"
// @Param        per_combination query bool false "Include per-combination availability (default true)"
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var uri dto.ProductURI
	if !h.bindURI(c, &uri) {
		return
	}
	var req dto.ProductDetailRequest
	if !h.bindQuery(c, &req) {
		return
	}

	detail, err := h.productService.GetDetail(c.Request.Context(), storeID, uri.ID, req.WantsPerCombination())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// GetAvailability godoc
// @Summary      Get live availability of a product
// @Description  Never served from cache
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.AvailabilityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/availability [get]
func (h *ProductHandler) GetAvailability(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var uri dto.ProductURI
	if !h.bindURI(c, &uri) {
		return
	}

	availability, err := h.productService.GetAvailability(c.Request.Context(), storeID, uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	h.Success(c, availability)
}

// GetRelated godoc
// @Summary      List related products
// @Tags         products
// @Produce      json
// @Param        id    path  int true  "Product ID"
// @Param        limit query int false "Number of products, clamped to 1..12 (default 4)"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductSummaryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/related [get]
func (h *ProductHandler) GetRelated(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var uri dto.ProductURI
	if !h.bindURI(c, &uri) {
		return
	}
	var req dto.RelatedRequest
	if !h.bindQuery(c, &req) {
		return
	}

	related, err := h.productService.GetRelated(c.Request.Context(), storeID, uri.ID, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, related)
}
