package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Code4Devil/TechStore/models"
)

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Retailer").Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Retailer").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Brand         string  `json:"brand"`
	Image         string  `json:"image"`
	Tags          string  `json:"tags"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Quantity      int     `json:"quantity"`
	Type          string  `json:"type"`
}

// POST /products
// Legacy unowned catalog insert; retailer-owned products go through the
// retailer portal instead. Rating, review count and ownership are never
// client-settable.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if req.Name == "" || req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and a positive price are required"})
			return
		}

		product := models.Product{
			Name:          req.Name,
			Description:   req.Description,
			Brand:         req.Brand,
			Image:         req.Image,
			Tags:          req.Tags,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Quantity:      req.Quantity,
			Type:          req.Type,
			IsActive:      true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// GET /products/search?q=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		pattern := "%" + q + "%"
		var products []models.Product
		if err := db.
			Where("name ILIKE ? OR brand ILIKE ? OR type ILIKE ?", pattern, pattern, pattern).
			Preload("Retailer").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/suggestions?q=
func GetSuggestions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		pattern := "%" + q + "%"
		var suggestions []models.Product
		if err := db.
			Select("id", "name", "brand", "price", "image").
			Where("name ILIKE ? OR brand ILIKE ? OR type ILIKE ?", pattern, pattern, pattern).
			Limit(5).
			Find(&suggestions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
			return
		}
		c.JSON(http.StatusOK, suggestions)
	}
}
