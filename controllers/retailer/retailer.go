package retailerControllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Code4Devil/TechStore/models"
)

type RegisterRetailerRequest struct {
	Name            string                 `json:"name" validate:"required"`
	Email           string                 `json:"email" validate:"required,email"`
	Password        string                 `json:"password" validate:"required,min=6"`
	BusinessName    string                 `json:"businessName" validate:"required"`
	BusinessAddress models.BusinessAddress `json:"businessAddress"`
	Phone           string                 `json:"phone"`
}

type LoginRetailerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateRetailerRequest struct {
	Name            *string                 `json:"name"`
	BusinessName    *string                 `json:"businessName"`
	BusinessAddress *models.BusinessAddress `json:"businessAddress"`
	Phone           *string                 `json:"phone"`
	Logo            *string                 `json:"logo"`
}

var validate = validatorv10.New()

// generateRetailerToken issues a 30-day HMAC bearer token for a retailer.
func generateRetailerToken(retailerID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"retailer_id": retailerID,
		"exp":         time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// retailerIDFrom reads the retailer identity set by the auth middleware.
func retailerIDFrom(c *gin.Context) (uint, bool) {
	val, exists := c.Get("retailer_id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// POST /retailer/register
func RegisterRetailerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRetailerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
			return
		}

		var existing models.Retailer
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Retailer already exists with this email"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing retailer"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		retailer := models.Retailer{
			Name:            req.Name,
			Email:           req.Email,
			Password:        string(hash),
			BusinessName:    req.BusinessName,
			BusinessAddress: req.BusinessAddress,
			Phone:           req.Phone,
		}
		if err := db.Create(&retailer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create retailer"})
			return
		}

		token, err := generateRetailerToken(retailer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"retailer": retailer, "token": token})
	}
}

// POST /retailer/login
func LoginRetailerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRetailerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
			return
		}

		var retailer models.Retailer
		if err := db.Where("email = ?", req.Email).First(&retailer).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(retailer.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := generateRetailerToken(retailer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"retailer": retailer, "token": token})
	}
}

// GET /retailer/profile
func GetRetailerProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var retailer models.Retailer
		if err := db.Preload("Products").First(&retailer, retailerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Retailer not found"})
			return
		}
		c.JSON(http.StatusOK, retailer)
	}
}

// PUT /retailer/profile
func UpdateRetailerProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var retailer models.Retailer
		if err := db.First(&retailer, retailerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Retailer not found"})
			return
		}

		var req UpdateRetailerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.BusinessName != nil {
			updates["business_name"] = *req.BusinessName
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Logo != nil {
			updates["logo"] = *req.Logo
		}
		if req.BusinessAddress != nil {
			updates["business_street"] = req.BusinessAddress.Street
			updates["business_city"] = req.BusinessAddress.City
			updates["business_state"] = req.BusinessAddress.State
			updates["business_zip_code"] = req.BusinessAddress.ZipCode
			updates["business_country"] = req.BusinessAddress.Country
		}

		if len(updates) > 0 {
			if err := db.Model(&retailer).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update retailer"})
				return
			}
		}
		c.JSON(http.StatusOK, retailer)
	}
}
