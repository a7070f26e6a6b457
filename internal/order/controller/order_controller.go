package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ordermgmt/internal/domain"
	"ordermgmt/internal/dto"
	apperrors "ordermgmt/internal/errors"
	"ordermgmt/internal/order/validation"
	"ordermgmt/internal/respond"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	GetOrders(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error)
	UpdateOrder(ctx context.Context, id string, req dto.UpdateOrderRequest) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	CompleteOrder(ctx context.Context, id string) (*domain.Order, error)
	CancelOrder(ctx context.Context, id string) (*domain.Order, error)
}

type OrderController struct {
	service   OrderService
	responder *respond.Responder
}

func NewOrderController(service OrderService, responder *respond.Responder) *OrderController {
	return &OrderController{
		service:   service,
		responder: responder,
	}
}

func (c *OrderController) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", c.GetOrders)
		r.Post("/", c.CreateOrder)
		r.Get("/{id}", c.GetOrderByID)
		r.Put("/{id}", c.UpdateOrder)
		r.Delete("/{id}", c.DeleteOrder)
		r.Post("/{id}/complete", c.CompleteOrder)
		r.Post("/{id}/cancel", c.CancelOrder)
	})
}

func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to retrieve orders"

	q, err := validation.ParseListQuery(r.URL.Query())
	if err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	page, err := c.service.GetOrders(r.Context(), q)
	if err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Orders retrieved successfully", dto.NewPaginatedOrdersResponse(page))
}

func (c *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.handleError(w, r, "Failed to retrieve order", err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Order retrieved successfully", dto.NewOrderResponse(order))
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to create order"

	var req dto.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	order, err := c.service.CreateOrder(r.Context(), req)
	if err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	c.responder.Success(w, http.StatusCreated, "Order created successfully", dto.NewOrderResponse(order))
}

func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to update order"

	var req dto.UpdateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	order, err := c.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		c.handleError(w, r, failure, err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Order updated successfully", dto.NewOrderResponse(order))
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := c.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.handleError(w, r, "Failed to delete order", err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Order deleted successfully", nil)
}

func (c *OrderController) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.CompleteOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.handleError(w, r, "Failed to complete order", err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Order completed successfully", dto.NewOrderResponse(order))
}

func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.handleError(w, r, "Failed to cancel order", err)
		return
	}

	c.responder.Success(w, http.StatusOK, "Order cancelled successfully", dto.NewOrderResponse(order))
}

// handleError answers not-found and client errors directly and hands
// everything else to the terminal classifier.
func (c *OrderController) handleError(w http.ResponseWriter, r *http.Request, failure string, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.responder.Reject(w, http.StatusNotFound, failure, err.Error())
		return
	}

	if apperrors.IsClientError(err) {
		c.responder.Reject(w, http.StatusBadRequest, failure, err.Error())
		return
	}

	c.responder.Fail(w, r, err)
}

// decodeBody reads a single JSON object into dst. An empty body decodes as {}
// and unknown fields are ignored. Anything after the object is malformed.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return ensureEOF(dec)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return apperrors.NewFieldError(typeErr.Field, "Invalid value for field "+typeErr.Field)
		}
		return apperrors.NewValidationError("Invalid value in request body")
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}

	return apperrors.NewMalformedRequestError(err)
}

func ensureEOF(dec *json.Decoder) error {
	err := dec.Decode(&struct{}{})
	if errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	if err == nil {
		err = errors.New("unexpected data after JSON object")
	}
	return apperrors.NewMalformedRequestError(err)
}
