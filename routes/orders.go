package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Code4Devil/TechStore/controllers/order"
)

// SetupOrderRoutes registers the customer-facing order endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Place a new order (checkout)
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Order history for an account
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// Single order scoped to an account
		orders.GET("/:orderId", orderControllers.GetOrderByIDHandler(db))

		// Owner/admin status update
		orders.PATCH("/:orderId/status", orderControllers.UpdateOrderStatusHandler(db))
	}
}
