// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/catalog"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalogService *catalog.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req catalog.ListRequest
	if c.Query("featured") == "true" {
		featured := true
		req.Featured = &featured
	}

	products, err := h.catalogService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prod, err := h.catalogService.Get(productID)
	if err != nil {
		h.renderCatalogError(c, err, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, prod)
}

// CreateProduct handles POST /products (admin)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.catalogService.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, prod)
}

// UpdateProduct handles PUT /products/:id (admin)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.catalogService.Update(productID, &req)
	if err != nil {
		h.renderCatalogError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, prod)
}

// UpdateStock handles PUT /products/:id/stock (admin)
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Stock int `json:"stock" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.catalogService.UpdateStock(productID, req.Stock)
	if err != nil {
		h.renderCatalogError(c, err, "Failed to update stock")
		return
	}

	c.JSON(http.StatusOK, prod)
}

// DeleteProduct handles DELETE /products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(productID); err != nil {
		h.renderCatalogError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// renderCatalogError maps catalog service errors to HTTP responses
func (h *ProductHandler) renderCatalogError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   fallback,
		"details": err.Error(),
	})
}

// parseIDParam parses a numeric path parameter, rendering a 400 on failure
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}
