package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Code4Devil/TechStore/controllers/order"
	retailerControllers "github.com/Code4Devil/TechStore/controllers/retailer"
	"github.com/Code4Devil/TechStore/middleware"
)

// SetupRetailerRoutes registers all "/retailer/*" endpoints. Everything past
// register/login requires a retailer bearer token.
func SetupRetailerRoutes(r *gin.Engine, db *gorm.DB) {
	retailer := r.Group("/retailer")
	{
		retailer.POST("/register", retailerControllers.RegisterRetailerHandler(db))
		retailer.POST("/login", retailerControllers.LoginRetailerHandler(db))
	}

	protected := r.Group("/retailer")
	protected.Use(middleware.ValidateRetailerToken(db))
	{
		protected.GET("/profile", retailerControllers.GetRetailerProfileHandler(db))
		protected.PUT("/profile", retailerControllers.UpdateRetailerProfileHandler(db))

		// ─────────── Product Management ───────────
		products := protected.Group("/products")
		{
			products.GET("", retailerControllers.ListRetailerProductsHandler(db))
			products.POST("", retailerControllers.CreateRetailerProductHandler(db))
			products.GET("/export", retailerControllers.ExportRetailerProductsHandler(db))
			products.GET("/:id", retailerControllers.GetRetailerProductHandler(db))
			products.PUT("/:id", retailerControllers.UpdateRetailerProductHandler(db))
			products.DELETE("/:id", retailerControllers.DeactivateRetailerProductHandler(db))
		}

		// ─────────── Attributed Orders ───────────
		orders := protected.Group("/orders")
		{
			orders.GET("", retailerControllers.ListRetailerOrdersHandler(db))
			orders.GET("/feed", orderControllers.OrderFeedHandler)
			orders.GET("/:orderId", retailerControllers.GetRetailerOrderHandler(db))
			orders.PATCH("/:orderId/status", retailerControllers.UpdateRetailerOrderStatusHandler(db))
		}
	}
}
