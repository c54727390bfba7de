package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		in   string
		want OrderStatus
	}{
		{"shipped", OrderStatusShipped},
		{"Shipped", OrderStatusShipped},
		{"SHIPPED", OrderStatusShipped},
		{" pending ", OrderStatusPending},
		{"cancelled", OrderStatusCancelled},
		{"Processing", OrderStatusProcessing},
		{"delivered", OrderStatusDelivered},
	}
	for _, tc := range cases {
		got, err := ParseOrderStatus(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseOrderStatusRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "returned", "SHIPPING", "done"} {
		_, err := ParseOrderStatus(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))

	// no skipping ahead or moving backward
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusProcessing))

	// re-applying the current status is always fine
	for _, s := range AllOrderStatuses() {
		assert.True(t, s.CanTransitionTo(s), "status %s", s)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusProcessing.Terminal())
	assert.False(t, OrderStatusShipped.Terminal())
}

func TestRetailerSettable(t *testing.T) {
	assert.True(t, OrderStatusProcessing.RetailerSettable())
	assert.True(t, OrderStatusShipped.RetailerSettable())
	assert.True(t, OrderStatusDelivered.RetailerSettable())
	assert.False(t, OrderStatusPending.RetailerSettable())
	assert.False(t, OrderStatusCancelled.RetailerSettable())
}
