package domain

import (
	"slices"
	"strings"
	"time"

	apperrors "ordermgmt/internal/errors"
)

type Status string

const (
	OrderStatusPending   Status = "pending"
	OrderStatusCompleted Status = "completed"
	OrderStatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

func (s Status) String() string {
	return string(s)
}

// Statuses lists every accepted status in display order.
func Statuses() []Status {
	return []Status{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
}

type Order struct {
	ID           string
	CustomerName string `validate:"notblank,max=255"`
	Item         string `validate:"notblank,max=255"`
	Quantity     int    `validate:"min=1,max=10000"`
	Status       Status `validate:"order_status"`
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// clock is replaced in tests. Timestamps keep microsecond precision so they
// survive a round trip through either storage engine unchanged.
var clock = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewOrder builds a validated order that has not been stored yet. A nil or
// empty status defaults to pending.
func NewOrder(customerName, item string, quantity int, status *Status) (*Order, error) {
	st := OrderStatusPending
	if status != nil && *status != "" {
		st = *status
	}

	order := &Order{
		CustomerName: strings.TrimSpace(customerName),
		Item:         strings.TrimSpace(item),
		Quantity:     quantity,
		Status:       st,
		CreatedAt:    clock(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *Order) Validate() error {
	return validateStruct(o)
}

func (o *Order) IsCompleted() bool { return o.Status == OrderStatusCompleted }
func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }

// CanBeModified reports whether the status may still change.
func (o *Order) CanBeModified() bool {
	return !o.IsCompleted()
}

// CanTransitionTo reports whether moving from the current status to next is
// allowed. Completed is terminal; a cancelled order can never be completed.
func (o *Order) CanTransitionTo(next Status) error {
	if o.Status == next {
		return nil
	}

	if !o.CanBeModified() {
		if next == OrderStatusCancelled {
			return apperrors.NewInvalidTransitionError(o.Status.String(), next.String(), "Cannot cancel a completed order")
		}
		return apperrors.NewInvalidTransitionError(o.Status.String(), next.String(), "Cannot change status of a completed order")
	}
	if o.IsCancelled() && next == OrderStatusCompleted {
		return apperrors.NewInvalidTransitionError(o.Status.String(), next.String(), "Cannot complete a cancelled order")
	}
	return nil
}

func (o *Order) MarkCompleted() error {
	if o.IsCancelled() {
		return apperrors.NewInvalidTransitionError(o.Status.String(), OrderStatusCompleted.String(), "Cannot complete a cancelled order")
	}
	o.Status = OrderStatusCompleted
	o.touch()
	return nil
}

func (o *Order) Cancel() error {
	if !o.CanBeModified() {
		return apperrors.NewInvalidTransitionError(o.Status.String(), OrderStatusCancelled.String(), "Cannot cancel a completed order")
	}
	o.Status = OrderStatusCancelled
	o.touch()
	return nil
}

func (o *Order) touch() {
	now := clock()
	o.UpdatedAt = &now
}
