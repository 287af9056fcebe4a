// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req wishlist.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ids, err := h.wishlistService.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		if errors.Is(err, wishlist.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add product to wishlist",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": ids,
	})
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	products, err := h.wishlistService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get wishlist",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": products,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
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

	ids, err := h.wishlistService.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to remove product from wishlist",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": ids,
	})
}
