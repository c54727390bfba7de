package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Code4Devil/TechStore/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type ShippingAddressInput struct {
	FullName     string `json:"fullName" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zipCode" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

type PlaceOrderRequest struct {
	Email           string               `json:"email" validate:"required,email"`
	Items           []OrderItemInput     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress" validate:"required"`
	TotalAmount     *float64             `json:"totalAmount" validate:"omitempty,gt=0"`
	Status          string               `json:"status"` // optional, defaults to PENDING
}

type UpdateOrderStatusRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"required"`
}

var validate = validatorv10.New()

// -------- Helpers --------

// amountsMatch compares two amounts at cent precision to dodge float rounding.
func amountsMatch(a, b float64) bool {
	return int(math.Round(a*100)) == int(math.Round(b*100))
}

// generateOrderRef builds a human-facing order reference.
// Example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func findUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "User"}
		}
		return nil, err
	}
	return &user, nil
}

// loadOrderDetail reloads an order with items resolved to product + retailer.
func loadOrderDetail(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.
		Preload("Items.Product.Retailer").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Core Logic --------

// PlaceOrder validates an order request against catalog inventory, decrements
// stock, creates the order and empties the cart in a single transaction.
// Stock is taken with a conditional decrement (quantity = quantity - n WHERE
// quantity >= n), so two concurrent orders can never oversell a product.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	status := models.OrderStatusPending
	if req.Status != "" {
		parsed, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, &InvalidStatusError{Given: req.Status, Allowed: models.AllOrderStatuses()}
		}
		status = parsed
	}

	user, err := findUserByEmail(db, req.Email)
	if err != nil {
		return nil, err
	}

	var orderID uint
	err = db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "Product", Ref: strconv.FormatUint(uint64(item.ProductID), 10)}
				}
				return err
			}

			if product.Quantity < item.Quantity {
				return &InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Available: product.Quantity,
				}
			}

			// Conditional decrement; RowsAffected == 0 means another order
			// took the stock between our read and this write.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", product.ID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Available: product.Quantity,
				}
			}

			total += product.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
			})
		}

		// The stored total is always the server-side figure; a client-claimed
		// total is only accepted when it agrees with it.
		if req.TotalAmount != nil && !amountsMatch(*req.TotalAmount, total) {
			return ErrTotalMismatch
		}

		order := models.Order{
			OrderRef: generateOrderRef(),
			UserID:   user.ID,
			Items:    items,
			ShippingAddress: models.ShippingAddress{
				FullName:     req.ShippingAddress.FullName,
				AddressLine1: req.ShippingAddress.AddressLine1,
				AddressLine2: req.ShippingAddress.AddressLine2,
				City:         req.ShippingAddress.City,
				State:        req.ShippingAddress.State,
				ZipCode:      req.ShippingAddress.ZipCode,
				Phone:        req.ShippingAddress.Phone,
			},
			TotalAmount: total,
			Status:      status,
			CreatedAt:   time.Now(),
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Checkout empties the cart.
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := loadOrderDetail(db, orderID)
	if err != nil {
		return nil, err
	}
	BroadcastOrderEvent(OrderEvent{
		Type:     OrderEventPlaced,
		OrderID:  created.ID,
		OrderRef: created.OrderRef,
		Status:   created.Status,
		At:       time.Now(),
	})
	return created, nil
}

// GetUserOrders returns the account's full order history, oldest first, with
// items resolved to product + retailer detail.
func GetUserOrders(db *gorm.DB, email string) ([]models.Order, error) {
	user, err := findUserByEmail(db, email)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := db.
		Where("user_id = ?", user.ID).
		Preload("Items.Product.Retailer").
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetUserOrder returns one order scoped to the given account.
func GetUserOrder(db *gorm.DB, email string, orderID uint) (*models.Order, error) {
	user, err := findUserByEmail(db, email)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.
		Where("id = ? AND user_id = ?", orderID, user.ID).
		Preload("Items.Product.Retailer").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Order"}
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus applies an owner/admin status change. Any canonical status
// is accepted case-insensitively; the transition table decides whether the
// move is legal. Re-applying the current status is a successful no-op.
func UpdateOrderStatus(db *gorm.DB, email string, orderID uint, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, &InvalidStatusError{Given: status, Allowed: models.AllOrderStatuses()}
	}

	user, err := findUserByEmail(db, email)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Order"}
		}
		return nil, err
	}

	if order.Status == next {
		return loadOrderDetail(db, order.ID)
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &InvalidTransitionError{From: order.Status, To: next}
	}

	if err := db.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}

	BroadcastOrderEvent(OrderEvent{
		Type:     OrderEventStatusChanged,
		OrderID:  order.ID,
		OrderRef: order.OrderRef,
		Status:   next,
		At:       time.Now(),
	})
	return loadOrderDetail(db, order.ID)
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders?email=
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		orders, err := GetUserOrders(db, email)
		if err != nil {
			c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderId?email=
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		order, err := GetUserOrder(db, email, uint(orderID))
		if err != nil {
			c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PATCH /orders/:orderId/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
			return
		}

		order, err := UpdateOrderStatus(db, req.Email, uint(orderID), req.Status)
		if err != nil {
			c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders — full order listing for the API-key surface.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items.Product.Retailer").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
