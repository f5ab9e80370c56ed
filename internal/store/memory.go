package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/beanhouse-cafe/api/internal/enum"
)

// MemoryStore is the ephemeral Store implementation. Everything lives in
// process memory and is lost on restart; it exists for local development and
// for running degraded when the document database is unreachable at startup.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]Order
	menu   map[string]MenuItem
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]Order),
		menu:   make(map[string]MenuItem),
	}
}

func (s *MemoryStore) Backend() string { return enum.BackendMemory }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// --- Menu ---

func (s *MemoryStore) ListMenu(ctx context.Context) ([]MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]MenuItem, 0, len(s.menu))
	for _, it := range s.menu {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *MemoryStore) CreateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(item.Name, "") {
		return MenuItem{}, ErrDuplicateName
	}
	s.menu[item.ID] = item
	return item, nil
}

func (s *MemoryStore) UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[item.ID]; !ok {
		return MenuItem{}, ErrNotFound
	}
	if s.nameTaken(item.Name, item.ID) {
		return MenuItem{}, ErrDuplicateName
	}
	s.menu[item.ID] = item
	return item, nil
}

func (s *MemoryStore) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return ErrNotFound
	}
	delete(s.menu, id)
	return nil
}

func (s *MemoryStore) nameTaken(name, excludeID string) bool {
	for id, it := range s.menu {
		if id != excludeID && strings.EqualFold(it.Name, name) {
			return true
		}
	}
	return false
}

// --- Orders ---

func (s *MemoryStore) InsertOrders(ctx context.Context, orders []Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return nil
}

func (s *MemoryStore) ListPendingOrders(ctx context.Context) ([]Order, error) {
	orders := s.filterOrders(func(o Order) bool { return o.Status == enum.OrderStatusPending })
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders, nil
}

func (s *MemoryStore) ListFinishedOrders(ctx context.Context) ([]Order, error) {
	orders := s.filterOrders(func(o Order) bool {
		return o.Status == enum.OrderStatusCompleted || o.Status == enum.OrderStatusCanceled
	})
	sort.Slice(orders, func(i, j int) bool { return orders[i].UpdatedAt.After(orders[j].UpdatedAt) })
	return orders, nil
}

func (s *MemoryStore) ListAllOrders(ctx context.Context) ([]Order, error) {
	orders := s.filterOrders(func(Order) bool { return true })
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *MemoryStore) filterOrders(keep func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []Order{}
	for _, o := range s.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	return orders
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if o.Status != enum.OrderStatusPending {
		return Order{}, ErrAlreadyFinal
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	s.orders[id] = o
	return o, nil
}
