package orderControllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Code4Devil/TechStore/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Retailer{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Alice", Email: email, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRetailer(t *testing.T, db *gorm.DB, email string) *models.Retailer {
	t.Helper()
	retailer := &models.Retailer{
		Name:         "Rob",
		Email:        email,
		Password:     "hash",
		BusinessName: "Gadgets Inc",
	}
	require.NoError(t, db.Create(retailer).Error)
	return retailer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, retailerID *uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      price,
		Quantity:   stock,
		Type:       "laptops",
		RetailerID: retailerID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testAddress() ShippingAddressInput {
	return ShippingAddressInput{
		FullName:     "Alice Smith",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
		Phone:        "555-0100",
	}
}

func TestPlaceOrder(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	retailer := seedRetailer(t, db, "rob@gadgets.com")
	product := seedProduct(t, db, "Laptop", 999.99, 5, &retailer.ID)

	require.NoError(t, db.Create(&models.CartItem{
		UserID: user.ID, ProductID: product.ID, Quantity: 3,
	}).Error)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 3*999.99, order.TotalAmount, 0.001)

	// items come back resolved to product + retailer
	assert.Equal(t, "Laptop", order.Items[0].Product.Name)
	require.NotNil(t, order.Items[0].Product.Retailer)
	assert.Equal(t, retailer.ID, order.Items[0].Product.Retailer.ID)

	// stock decremented
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 2, stored.Quantity)

	// checkout emptied the cart
	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount)
}

func TestPlaceOrderNormalizesStatus(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Phone", 500, 10, nil)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
		Status:          "processing",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Tablet", 300, 5, nil)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: user.ID, ProductID: product.ID, Quantity: 10,
	}).Error)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 10}},
		ShippingAddress: testAddress(),
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Tablet", stockErr.Name)
	assert.Equal(t, 5, stockErr.Available)
	assert.Contains(t, err.Error(), "Available: 5")

	// nothing changed
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 5, stored.Quantity)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)
}

func TestPlaceOrderStockTakenMidTransaction(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Webcam", 45, 5, nil)

	// A rival checkout takes the stock after our read but before our write.
	// The callback fires just ahead of the conditional decrement and shrinks
	// the row on the same connection, so the read-check has already passed.
	taken := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("rival_checkout", func(tx *gorm.DB) {
		if taken || tx.Statement.Table != "products" {
			return
		}
		taken = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE products SET quantity = 1 WHERE id = ?", product.ID)
		require.NoError(t, err)
	}))

	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingAddress: testAddress(),
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.True(t, taken)

	// no order, no oversold decrement
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestDeactivatedProductsStayOnOrders(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	retailer := seedRetailer(t, db, "rob@gadgets.com")
	product := seedProduct(t, db, "Headset", 75, 5, &retailer.ID)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	// existing order items still resolve to the hidden product
	got, err := GetUserOrder(db, user.Email, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Headset", got.Items[0].Product.Name)
	assert.False(t, got.Items[0].Product.IsActive)
	require.NotNil(t, got.Items[0].Product.Retailer)
	assert.Equal(t, retailer.ID, got.Items[0].Product.Retailer.ID)
}

func TestPlaceOrderRollsBackEarlierDecrements(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	inStock := seedProduct(t, db, "Mouse", 25, 8, nil)
	short := seedProduct(t, db, "Keyboard", 80, 1, nil)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email: user.Email,
		Items: []OrderItemInput{
			{ProductID: inStock.ID, Quantity: 2},
			{ProductID: short.ID, Quantity: 3},
		},
		ShippingAddress: testAddress(),
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, short.ID, stockErr.ProductID)

	// the first product's decrement was rolled back with the transaction
	var stored models.Product
	require.NoError(t, db.First(&stored, inStock.ID).Error)
	assert.Equal(t, 8, stored.Quantity)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")

	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: 4242, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Resource)
	assert.Contains(t, err.Error(), "4242")
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	db := setupDB(t)
	product := seedProduct(t, db, "Charger", 20, 3, nil)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           "ghost@example.com",
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Resource)
}

func TestPlaceOrderTotalMismatch(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Monitor", 150, 4, nil)

	claimed := 1.00 // obviously not 2 × 150
	_, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
		TotalAmount:     &claimed,
	})
	require.ErrorIs(t, err, ErrTotalMismatch)

	// decrement rolled back
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 4, stored.Quantity)
}

func TestPlaceOrderAcceptsMatchingTotal(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Monitor", 150.50, 4, nil)

	claimed := 301.00
	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
		TotalAmount:     &claimed,
	})
	require.NoError(t, err)
	assert.InDelta(t, 301.00, order.TotalAmount, 0.001)
}

func TestGetUserOrders(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Dock", 60, 10, nil)

	for i := 0; i < 2; i++ {
		_, err := PlaceOrder(db, PlaceOrderRequest{
			Email:           user.Email,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		require.NoError(t, err)
	}

	orders, err := GetUserOrders(db, user.Email)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Dock", orders[0].Items[0].Product.Name)

	_, err = GetUserOrders(db, "ghost@example.com")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestGetUserOrderScopedToAccount(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Cable", 10, 10, nil)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           alice.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	got, err := GetUserOrder(db, alice.Email, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// another account cannot see it
	_, err = GetUserOrder(db, bob.Email, order.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Order", nf.Resource)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "SSD", 120, 10, nil)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		Email:           user.Email,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	t.Run("normalizes casing", func(t *testing.T) {
		updated, err := UpdateOrderStatus(db, user.Email, order.ID, "processing")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusProcessing, updated.Status)

		updated, err = UpdateOrderStatus(db, user.Email, order.ID, "Shipped")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
	})

	t.Run("idempotent repeat", func(t *testing.T) {
		updated, err := UpdateOrderStatus(db, user.Email, order.ID, "SHIPPED")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := UpdateOrderStatus(db, user.Email, order.ID, "teleported")
		var invalid *InvalidStatusError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, err.Error(), "PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED")
	})

	t.Run("rejects backward move", func(t *testing.T) {
		_, err := UpdateOrderStatus(db, user.Email, order.ID, "PENDING")
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)

		var stored models.Order
		require.NoError(t, db.First(&stored, order.ID).Error)
		assert.Equal(t, models.OrderStatusShipped, stored.Status)
	})

	t.Run("terminal status is final", func(t *testing.T) {
		_, err := UpdateOrderStatus(db, user.Email, order.ID, "DELIVERED")
		require.NoError(t, err)
		_, err = UpdateOrderStatus(db, user.Email, order.ID, "CANCELLED")
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)
	})
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice@example.com")

	_, err := UpdateOrderStatus(db, user.Email, 999, "PROCESSING")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Order", nf.Resource)
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 404, HTTPStatus(&NotFoundError{Resource: "Order"}))
	assert.Equal(t, 400, HTTPStatus(&InsufficientStockError{Name: "X", Available: 1}))
	assert.Equal(t, 400, HTTPStatus(&InvalidStatusError{Given: "x", Allowed: models.AllOrderStatuses()}))
	assert.Equal(t, 400, HTTPStatus(&InvalidTransitionError{From: models.OrderStatusPending, To: models.OrderStatusDelivered}))
	assert.Equal(t, 400, HTTPStatus(ErrTotalMismatch))
	assert.Equal(t, 403, HTTPStatus(ErrForbidden))
	assert.Equal(t, 500, HTTPStatus(errors.New("connection reset")))
}
