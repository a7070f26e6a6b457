package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ordermgmt/internal/errors"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return at }
	t.Cleanup(func() { clock = prev })
}

func statusPtr(s Status) *Status { return &s }

func TestNewOrder_DefaultsAndTrims(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC)
	fixedClock(t, at)

	order, err := NewOrder("  John Doe ", " Laptop", 2, nil)

	require.NoError(t, err)
	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, "Laptop", order.Item)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, at, order.CreatedAt)
	assert.Nil(t, order.UpdatedAt)
	assert.Empty(t, order.ID)
}

func TestNewOrder_EmptyStatusDefaultsToPending(t *testing.T) {
	order, err := NewOrder("Jane", "Desk", 1, statusPtr(""))

	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestNewOrder_ExplicitStatus(t *testing.T) {
	order, err := NewOrder("Jane", "Desk", 1, statusPtr(OrderStatusCompleted))

	require.NoError(t, err)
	assert.True(t, order.IsCompleted())
}

func TestNewOrder_Validation(t *testing.T) {
	long := strings.Repeat("a", 256)

	tests := []struct {
		name      string
		customer  string
		item      string
		quantity  int
		status    *Status
		wantField string
		wantMsg   string
	}{
		{"blank customer", "   ", "Laptop", 1, nil, FieldCustomerName, "Customer name is required"},
		{"long customer", long, "Laptop", 1, nil, FieldCustomerName, "Customer name must be at most 255 characters"},
		{"blank item", "John", "", 1, nil, FieldItem, "Item is required"},
		{"long item", "John", long, 1, nil, FieldItem, "Item must be at most 255 characters"},
		{"zero quantity", "John", "Laptop", 0, nil, FieldQuantity, "Quantity must be between 1 and 10,000"},
		{"quantity too large", "John", "Laptop", 10001, nil, FieldQuantity, "Quantity must be between 1 and 10,000"},
		{"bad status", "John", "Laptop", 1, statusPtr("shipped"), FieldStatus, "Invalid status. Must be: pending, completed, or cancelled"},
		{"first failing field wins", "", "", 0, nil, FieldCustomerName, "Customer name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.customer, tt.item, tt.quantity, tt.status)

			assert.Nil(t, order)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			require.Len(t, ve.Details, 1)
			assert.Equal(t, tt.wantField, ve.Details[0].Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestNewOrder_Boundaries(t *testing.T) {
	max := strings.Repeat("a", 255)

	order, err := NewOrder(max, max, MaxQuantity, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, order.Quantity)

	order, err = NewOrder("x", "y", MinQuantity, nil)
	require.NoError(t, err)
	assert.Equal(t, MinQuantity, order.Quantity)
}

func TestOrder_MarkCompleted(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fixedClock(t, at)

	order := &Order{Status: OrderStatusPending}
	require.NoError(t, order.MarkCompleted())
	assert.True(t, order.IsCompleted())
	require.NotNil(t, order.UpdatedAt)
	assert.Equal(t, at, *order.UpdatedAt)

	cancelled := &Order{Status: OrderStatusCancelled}
	err := cancelled.MarkCompleted()
	te, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "Cannot complete a cancelled order", te.Message)
	assert.True(t, cancelled.IsCancelled())
	assert.Nil(t, cancelled.UpdatedAt)
}

func TestOrder_Cancel(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	require.NoError(t, order.Cancel())
	assert.True(t, order.IsCancelled())
	assert.NotNil(t, order.UpdatedAt)

	completed := &Order{Status: OrderStatusCompleted}
	err := completed.Cancel()
	assert.EqualError(t, err, "Cannot cancel a completed order")
	assert.True(t, completed.IsCompleted())
}

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		wantErr string
	}{
		{OrderStatusPending, OrderStatusCompleted, ""},
		{OrderStatusPending, OrderStatusCancelled, ""},
		{OrderStatusPending, OrderStatusPending, ""},
		{OrderStatusCancelled, OrderStatusPending, ""},
		{OrderStatusCancelled, OrderStatusCompleted, "Cannot complete a cancelled order"},
		{OrderStatusCompleted, OrderStatusCompleted, ""},
		{OrderStatusCompleted, OrderStatusCancelled, "Cannot cancel a completed order"},
		{OrderStatusCompleted, OrderStatusPending, "Cannot change status of a completed order"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			order := &Order{Status: tt.from}
			err := order.CanTransitionTo(tt.to)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestOrder_Predicates(t *testing.T) {
	pending := &Order{Status: OrderStatusPending}
	assert.True(t, pending.CanBeModified())
	assert.False(t, pending.IsCompleted())

	cancelled := &Order{Status: OrderStatusCancelled}
	assert.True(t, cancelled.CanBeModified())
	assert.True(t, cancelled.IsCancelled())

	completed := &Order{Status: OrderStatusCompleted}
	assert.False(t, completed.CanBeModified())
	assert.True(t, completed.IsCompleted())
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("PENDING")
	assert.EqualError(t, err, "Invalid status. Must be: pending, completed, or cancelled")
}

func TestFieldValidators(t *testing.T) {
	assert.NoError(t, ValidateCustomerName("John"))
	assert.EqualError(t, ValidateCustomerName(" \t"), "Customer name is required")
	assert.NoError(t, ValidateItem("Pen"))
	assert.EqualError(t, ValidateItem(""), "Item is required")
	assert.NoError(t, ValidateQuantity(10000))
	assert.EqualError(t, ValidateQuantity(-1), "Quantity must be between 1 and 10,000")
}
