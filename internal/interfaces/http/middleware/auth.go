// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/pkg/auth"
	"gorm.io/gorm"
)

// Context keys set by the auth middleware
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "auth_user"
)

// Protect verifies the bearer token and resolves it to an active account.
// Handlers behind it can trust the resolved identity unconditionally.
func Protect(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authorized, no token",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			message := "Not authorized, token failed"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": message,
			})
			c.Abort()
			return
		}

		var account user.User
		err = db.Where("id = ?", claims.UserID).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authorized",
			})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Authentication failed",
			})
			c.Abort()
			return
		}

		if !account.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account is inactive",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, account.ID)
		c.Set(ContextUserKey, &account)

		c.Next()
	}
}

// Admin ensures the resolved account carries an admin role
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, exists := GetUserFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !account.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user id from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserFromContext extracts the authenticated account from gin context
func GetUserFromContext(c *gin.Context) (*user.User, bool) {
	account, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	return account.(*user.User), true
}
