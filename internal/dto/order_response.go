package dto

import (
	"time"

	"ordermgmt/internal/domain"
)

type OrderResponse struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customer_name"`
	Item         string     `json:"item"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type PaginationResponse struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

type PaginatedOrdersResponse struct {
	Data       []OrderResponse    `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Item:         o.Item,
		Quantity:     o.Quantity,
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func NewPaginatedOrdersResponse(page *domain.OrderPage) PaginatedOrdersResponse {
	data := make([]OrderResponse, 0, len(page.Orders))
	for i := range page.Orders {
		data = append(data, NewOrderResponse(&page.Orders[i]))
	}

	p := page.Pagination
	return PaginatedOrdersResponse{
		Data: data,
		Pagination: PaginationResponse{
			CurrentPage: p.CurrentPage,
			PageSize:    p.PageSize,
			TotalItems:  p.TotalItems,
			TotalPages:  p.TotalPages,
			HasNext:     p.HasNext,
			HasPrev:     p.HasPrev,
		},
	}
}
