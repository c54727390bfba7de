package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth + cart/wishlist routes
	SetupAuthRoutes(r, db)

	// Public catalog
	SetupProductRoutes(r, db)

	// Customer order routes
	SetupOrderRoutes(r, db)

	// Retailer portal (JWT-protected)
	SetupRetailerRoutes(r, db)

	// Platform admin (API-key-protected)
	SetupAdminRoutes(r, db)
}
