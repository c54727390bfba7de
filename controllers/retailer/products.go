package retailerControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Code4Devil/TechStore/models"
)

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"omitempty,gt=0"`
	Brand         string  `json:"brand"`
	Image         string  `json:"image"`
	Tags          string  `json:"tags"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	Type          string  `json:"type"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Brand         *string  `json:"brand"`
	Image         *string  `json:"image"`
	Tags          *string  `json:"tags"`
	Quantity      *int     `json:"quantity"`
	Type          *string  `json:"type"`
	IsActive      *bool    `json:"isActive"`
}

// findOwnedProduct scopes a product lookup to the calling retailer.
func findOwnedProduct(db *gorm.DB, retailerID uint, productID string) (*models.Product, error) {
	var product models.Product
	err := db.Where("id = ? AND retailer_id = ?", productID, retailerID).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GET /retailer/products
func ListRetailerProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var products []models.Product
		if err := db.Where("retailer_id = ?", retailerID).Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// POST /retailer/products
func CreateRetailerProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
			return
		}

		product := models.Product{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Brand:         req.Brand,
			Image:         req.Image,
			Tags:          req.Tags,
			Quantity:      req.Quantity,
			Type:          req.Type,
			RetailerID:    &retailerID,
			IsActive:      true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// GET /retailer/products/:id
func GetRetailerProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := findOwnedProduct(db, retailerID, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// PUT /retailer/products/:id
func UpdateRetailerProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := findOwnedProduct(db, retailerID, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.OriginalPrice != nil {
			updates["original_price"] = *req.OriginalPrice
		}
		if req.Brand != nil {
			updates["brand"] = *req.Brand
		}
		if req.Image != nil {
			updates["image"] = *req.Image
		}
		if req.Tags != nil {
			updates["tags"] = *req.Tags
		}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /retailer/products/:id
// Products are never physically deleted; existing orders keep referencing
// them. Deactivation only hides them from the storefront.
func DeactivateRetailerProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := findOwnedProduct(db, retailerID, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
	}
}

// GET /retailer/products/export
func ExportRetailerProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var products []models.Product
		if err := db.Where("retailer_id = ?", retailerID).Order("id ASC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Brand", "Type", "Price", "OriginalPrice",
			"Quantity", "Active", "Tags", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(p.ID))
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Brand)
			row.AddCell().SetValue(p.Type)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.OriginalPrice)
			row.AddCell().SetValue(p.Quantity)
			row.AddCell().SetValue(strconv.FormatBool(p.IsActive))
			row.AddCell().SetValue(p.Tags)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
