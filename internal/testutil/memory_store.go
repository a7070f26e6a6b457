package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ordermgmt/internal/domain"
	apperrors "ordermgmt/internal/errors"
)

// MemoryOrderStore is an in-process order repository for handler and router
// tests. It follows the same contract as the SQL repositories.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]domain.Order)}
}

func (s *MemoryOrderStore) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *order
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	stored.UpdatedAt = nil
	s.orders[stored.ID] = stored

	out := stored
	return &out, nil
}

func (s *MemoryOrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *MemoryOrderStore) FindAll(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if q.Status == nil || o.Status == *q.Status {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start := min(q.Offset(), len(matched))
	end := min(start+q.PageSize, len(matched))

	return &domain.OrderPage{
		Orders:     append([]domain.Order{}, matched[start:end]...),
		Pagination: domain.NewPagination(q.Page, q.PageSize, len(matched)),
	}, nil
}

func (s *MemoryOrderStore) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewNoFieldsProvidedError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&o)
	now := time.Now().UTC().Truncate(time.Microsecond)
	o.UpdatedAt = &now
	s.orders[id] = o

	out := o
	return &out, nil
}

func (s *MemoryOrderStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

func (s *MemoryOrderStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.orders[id]
	return ok, nil
}
