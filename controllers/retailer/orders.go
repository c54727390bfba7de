package retailerControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Code4Devil/TechStore/controllers/order"
	"github.com/Code4Devil/TechStore/models"
)

// CustomerInfo is the projection of the purchasing account a retailer may see.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderSummary is an order filtered down to one retailer's line items. The
// status is the order's single shared value; the subtotal covers only the
// owned subset.
type OrderSummary struct {
	OrderID         uint                   `json:"orderId"`
	OrderRef        string                 `json:"orderRef"`
	OrderDate       time.Time              `json:"orderDate"`
	Customer        CustomerInfo           `json:"customer"`
	Items           []models.OrderItem     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Status          models.OrderStatus     `json:"status"`
	Subtotal        float64                `json:"subtotal"`
}

type RetailerStatusRequest struct {
	UserEmail string `json:"userEmail"`
	Status    string `json:"status"`
}

// ownedItems filters an order's items to those whose product belongs to the
// retailer and computes the subtotal over exactly that subset.
func ownedItems(order *models.Order, retailerID uint) ([]models.OrderItem, float64) {
	var items []models.OrderItem
	var subtotal float64
	for _, item := range order.Items {
		if item.Product.RetailerID != nil && *item.Product.RetailerID == retailerID {
			items = append(items, item)
			subtotal += item.Product.Price * float64(item.Quantity)
		}
	}
	return items, subtotal
}

func summarize(order *models.Order, retailerID uint) (OrderSummary, bool) {
	items, subtotal := ownedItems(order, retailerID)
	if len(items) == 0 {
		return OrderSummary{}, false
	}
	return OrderSummary{
		OrderID:   order.ID,
		OrderRef:  order.OrderRef,
		OrderDate: order.CreatedAt,
		Customer: CustomerInfo{
			Name:  order.User.Name,
			Email: order.User.Email,
		},
		Items:           items,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status,
		Subtotal:        subtotal,
	}, true
}

// -------- Core Logic --------

// ListRetailerOrders returns every order containing at least one of the
// retailer's products, newest first. Attribution is a join over
// orders → order_items → products rather than a scan of all accounts.
func ListRetailerOrders(db *gorm.DB, retailerID uint) ([]OrderSummary, error) {
	var orders []models.Order
	if err := db.
		Distinct("orders.*").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.retailer_id = ?", retailerID).
		Preload("User").
		Preload("Items.Product.Retailer").
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		if summary, ok := summarize(&orders[i], retailerID); ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries, nil
}

// GetRetailerOrder returns one attributed order detail for the
// (orderID, customer email) pair.
func GetRetailerOrder(db *gorm.DB, retailerID, orderID uint, userEmail string) (*OrderSummary, error) {
	var user models.User
	if err := db.Where("email = ?", userEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &orderControllers.NotFoundError{Resource: "Order"}
		}
		return nil, err
	}

	var order models.Order
	if err := db.
		Where("id = ? AND user_id = ?", orderID, user.ID).
		Preload("User").
		Preload("Items.Product.Retailer").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &orderControllers.NotFoundError{Resource: "Order"}
		}
		return nil, err
	}

	summary, ok := summarize(&order, retailerID)
	if !ok {
		return nil, orderControllers.ErrForbidden
	}
	return &summary, nil
}

// UpdateRetailerOrderStatus applies a retailer status change. Retailers may
// only set PROCESSING, SHIPPED or DELIVERED, and only on orders that contain
// at least one of their own products. One owned item is enough: a shared
// order's status is a single value even though attribution splits the items.
func UpdateRetailerOrderStatus(db *gorm.DB, retailerID, orderID uint, userEmail, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil || !next.RetailerSettable() {
		return nil, &orderControllers.InvalidStatusError{
			Given:   status,
			Allowed: models.RetailerStatuses(),
			Role:    "Retailers",
		}
	}

	var user models.User
	if err := db.Where("email = ?", userEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &orderControllers.NotFoundError{Resource: "Order"}
		}
		return nil, err
	}

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &orderControllers.NotFoundError{Resource: "Order"}
		}
		return nil, err
	}

	var owned int64
	if err := db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.retailer_id = ?", order.ID, retailerID).
		Count(&owned).Error; err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, orderControllers.ErrForbidden
	}

	if order.Status == next {
		return &order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &orderControllers.InvalidTransitionError{From: order.Status, To: next}
	}

	if err := db.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}
	order.Status = next

	orderControllers.BroadcastOrderEvent(orderControllers.OrderEvent{
		Type:     orderControllers.OrderEventStatusChanged,
		OrderID:  order.ID,
		OrderRef: order.OrderRef,
		Status:   next,
		At:       time.Now(),
	})
	return &order, nil
}

// -------- Handlers --------

// GET /retailer/orders
func ListRetailerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		summaries, err := ListRetailerOrders(db, retailerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, summaries)
	}
}

// GET /retailer/orders/:orderId?userEmail=
func GetRetailerOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userEmail := c.Query("userEmail")
		if userEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User email is required"})
			return
		}
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		summary, err := GetRetailerOrder(db, retailerID, uint(orderID), userEmail)
		if err != nil {
			c.JSON(orderControllers.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// PATCH /retailer/orders/:orderId/status
func UpdateRetailerOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		retailerID, ok := retailerIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req RetailerStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if req.UserEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User email is required"})
			return
		}

		order, err := UpdateRetailerOrderStatus(db, retailerID, uint(orderID), req.UserEmail, req.Status)
		if err != nil {
			c.JSON(orderControllers.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated to " + string(order.Status),
			"orderId": order.ID,
			"status":  order.Status,
		})
	}
}
