package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/Code4Devil/TechStore/controllers/product"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.POST("", productcontroller.CreateProduct(db))
		products.GET("/search", productcontroller.SearchProducts(db))
		products.GET("/suggestions", productcontroller.GetSuggestions(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
}
