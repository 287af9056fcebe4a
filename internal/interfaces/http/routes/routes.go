// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	redislib "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/logging"
	"gorm.io/gorm"
)

// Setup registers every route group. Each path has exactly one handler; gin
// panics on duplicate registration, so a conflicting route fails at startup
// instead of silently shadowing.
func Setup(rg *gin.RouterGroup, db *gorm.DB, redisClient *redislib.Client, cfg *config.Config, logger *logrus.Logger) {
	SetupAuthRoutes(rg, db, cfg, logger)
	SetupProductRoutes(rg, db, cfg, logger)
	SetupCartRoutes(rg, db, redisClient, cfg, logger)
	SetupWishlistRoutes(rg, db, cfg, logger)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(user.NewService(db, cfg, logging.Component(logger, "user")))

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.Protect(db, cfg))
		{
			protected.GET("/verify", authHandler.Verify)
			protected.GET("/me", authHandler.Me)
		}
	}
}

// SetupProductRoutes sets up catalog routes; reads are public, writes are
// admin only
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(catalog.NewService(db, logging.Component(logger, "catalog")))

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		admin := products.Group("")
		admin.Use(middleware.Protect(db, cfg))
		admin.Use(middleware.Admin())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.PUT("/:id/stock", productHandler.UpdateStock)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupCartRoutes sets up cart routes; all require an authenticated user
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redislib.Client, cfg *config.Config, logger *logrus.Logger) {
	cartService := cart.NewService(
		cart.NewRedisStore(redisClient),
		cart.NewGormCatalog(db),
		logging.Component(logger, "cart"),
	)
	cartHandler := handlers.NewCartHandler(cartService)

	carts := rg.Group("/cart")
	carts.Use(middleware.Protect(db, cfg))
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("", cartHandler.AddToCart)
		carts.PUT("/:productId", cartHandler.UpdateCartItem)
		carts.DELETE("/:productId", cartHandler.RemoveFromCart)
		carts.DELETE("", cartHandler.ClearCart)
	}
}

// SetupWishlistRoutes sets up wishlist routes; all require an authenticated user
func SetupWishlistRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	wishlistService := wishlist.NewService(
		wishlist.NewGormStore(db),
		wishlist.NewGormCatalog(db),
		logging.Component(logger, "wishlist"),
	)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	wishlists := rg.Group("/wishlist")
	wishlists.Use(middleware.Protect(db, cfg))
	{
		wishlists.POST("", wishlistHandler.AddToWishlist)
		wishlists.GET("", wishlistHandler.GetWishlist)
		wishlists.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	}
}
