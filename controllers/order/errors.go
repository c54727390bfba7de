package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Code4Devil/TechStore/models"
)

// NotFoundError covers missing users, products and orders.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

// InsufficientStockError names the short product and how many units remain.
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough inventory for %s. Available: %d", e.Name, e.Available)
}

// InvalidStatusError reports a status outside the allowed set.
type InvalidStatusError struct {
	Given   string
	Allowed []models.OrderStatus
	Role    string // "", or "Retailers"
}

func (e *InvalidStatusError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("Invalid status. %s can only set: %s", e.Role, models.JoinStatuses(e.Allowed))
	}
	return fmt.Sprintf("Invalid status. Must be one of: %s", models.JoinStatuses(e.Allowed))
}

// InvalidTransitionError reports a move the status table forbids.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot change order status from %s to %s", e.From, e.To)
}

// ErrTotalMismatch is returned when a client-claimed total disagrees with the
// total recomputed from current product prices.
var ErrTotalMismatch = errors.New("totalAmount does not match the sum of item prices")

// ErrForbidden is returned when a retailer touches an order it owns no items of.
var ErrForbidden = errors.New("you do not have permission to access this order")

// HTTPStatus maps domain errors to response codes. Anything unrecognized is a
// storage fault and surfaces as 500.
func HTTPStatus(err error) int {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var stock *InsufficientStockError
	if errors.As(err, &stock) {
		return http.StatusBadRequest
	}
	var status *InvalidStatusError
	if errors.As(err, &status) {
		return http.StatusBadRequest
	}
	var transition *InvalidTransitionError
	if errors.As(err, &transition) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrTotalMismatch) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
