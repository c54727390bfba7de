package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Code4Devil/TechStore/controllers/cart"
	userControllers "github.com/Code4Devil/TechStore/controllers/user"
)

// SetupAuthRoutes registers all "/auth/*" endpoints. Accounts are identified
// by the email carried in the query string or request body.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", userControllers.RegisterUserHandler(db))
		authGroup.POST("/login", userControllers.LoginUserHandler(db))
		authGroup.GET("/profile", userControllers.GetProfileHandler(db))

		// ──────────────── Shopping Cart ────────────────
		authGroup.GET("/cart", cartControllers.GetUserCart(db))
		authGroup.PUT("/cart", cartControllers.UpdateCartItem(db))
		authGroup.DELETE("/cart/:productId", cartControllers.DeleteCartItem(db))

		// ──────────────── Wishlist ────────────────
		authGroup.POST("/wishlist/:productId", cartControllers.AddToWishlist(db))
		authGroup.DELETE("/wishlist/:productId", cartControllers.RemoveFromWishlist(db))
	}
}
