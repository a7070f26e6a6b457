package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ordermgmt/internal/domain"
	"ordermgmt/internal/dto"
	apperrors "ordermgmt/internal/errors"
	"ordermgmt/internal/order/validation"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error)
	Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// OrderService applies the business rules around the order repository.
// Every input is validated before the repository is touched.
type OrderService struct {
	repo   OrderRepository
	logger *zap.Logger
}

func NewOrderService(repo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := validation.ValidateCreate(req); err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(req.CustomerName, req.Item, req.Quantity, req.StatusValue())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.logger.Info("order created", zap.String("orderId", created.ID))
	return created, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := validation.ValidateID(id); err != nil {
		return nil, err
	}
	return s.mustFind(ctx, id)
}

func (s *OrderService) GetOrders(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error) {
	if err := validation.ValidateListQuery(q); err != nil {
		return nil, err
	}

	page, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return page, nil
}

// UpdateOrder writes the supplied fields. A status change is checked against
// the stored status first; any other update only needs the order to exist.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	if err := validation.ValidateID(id); err != nil {
		return nil, err
	}
	if err := validation.ValidateUpdate(req); err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.Status.Set {
		current, err := s.mustFind(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := current.CanTransitionTo(patch.Status.Value); err != nil {
			return nil, err
		}
	} else if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NewOrderNotFoundError(id)
	}

	s.logger.Info("order updated", zap.String("orderId", id))
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := validation.ValidateID(id); err != nil {
		return err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if !deleted {
		return apperrors.NewOrderNotFoundError(id)
	}

	s.logger.Info("order deleted", zap.String("orderId", id))
	return nil
}

func (s *OrderService) CompleteOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, (*domain.Order).MarkCompleted)
}

func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, (*domain.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id string, apply func(*domain.Order) error) (*domain.Order, error) {
	if err := validation.ValidateID(id); err != nil {
		return nil, err
	}

	order, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if err := apply(order); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, domain.OrderPatch{Status: domain.Some(order.Status)})
	if err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NewOrderNotFoundError(id)
	}

	s.logger.Info("order status changed",
		zap.String("orderId", id),
		zap.String("from", from.String()),
		zap.String("to", updated.Status.String()),
	)
	return updated, nil
}

func (s *OrderService) mustFind(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	if order == nil {
		return nil, apperrors.NewOrderNotFoundError(id)
	}
	return order, nil
}

func (s *OrderService) mustExist(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking order existence: %w", err)
	}
	if !exists {
		return apperrors.NewOrderNotFoundError(id)
	}
	return nil
}
