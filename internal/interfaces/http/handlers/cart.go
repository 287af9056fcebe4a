// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error getting cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	items, err := h.cartService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		h.renderCartError(c, err, "Error adding to cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateCartItem handles PUT /cart/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	items, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.renderCartError(c, err, "Error updating cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// RemoveFromCart handles DELETE /cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	items, err := h.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.renderCartError(c, err, "Error removing from cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error clearing cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, []cart.Item{})
}

// renderCartError maps cart service errors to HTTP responses
func (h *CartHandler) renderCartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidSize):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fallback,
			"details": err.Error(),
		})
	}
}

// parseProductID parses the :productId path parameter, rendering a 400 on failure
func parseProductID(c *gin.Context) (uint, bool) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(productID), true
}
