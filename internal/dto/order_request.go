package dto

import (
	"strings"

	"ordermgmt/internal/domain"
)

type CreateOrderRequest struct {
	CustomerName string  `json:"customer_name"`
	Item         string  `json:"item"`
	Quantity     int     `json:"quantity"`
	Status       *string `json:"status,omitempty"`
}

// StatusValue returns the requested status, or nil when none was given.
func (r CreateOrderRequest) StatusValue() *domain.Status {
	if r.Status == nil || *r.Status == "" {
		return nil
	}
	s := domain.Status(*r.Status)
	return &s
}

// UpdateOrderRequest distinguishes an omitted field from one sent with a
// zero value.
type UpdateOrderRequest struct {
	CustomerName domain.Optional[string] `json:"customer_name"`
	Item         domain.Optional[string] `json:"item"`
	Quantity     domain.Optional[int]    `json:"quantity"`
	Status       domain.Optional[string] `json:"status"`
}

func (r UpdateOrderRequest) IsEmpty() bool {
	return !r.CustomerName.Set && !r.Item.Set && !r.Quantity.Set && !r.Status.Set
}

func (r UpdateOrderRequest) ToPatch() domain.OrderPatch {
	var p domain.OrderPatch
	if r.CustomerName.Set {
		p.CustomerName = domain.Some(strings.TrimSpace(r.CustomerName.Value))
	}
	if r.Item.Set {
		p.Item = domain.Some(strings.TrimSpace(r.Item.Value))
	}
	if r.Quantity.Set {
		p.Quantity = domain.Some(r.Quantity.Value)
	}
	if r.Status.Set {
		p.Status = domain.Some(domain.Status(r.Status.Value))
	}
	return p
}
