package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/store"
)

// Errors returned by the order service.
var (
	ErrEmptyItems      = errors.New("items are required")
	ErrItemName        = errors.New("item name is required")
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStatus   = errors.New("status must be completed or canceled")
)

// OrderStore defines the persistence methods the order service needs.
// Satisfied by store.Store; narrow interface for testability.
type OrderStore interface {
	InsertOrders(ctx context.Context, orders []store.Order) error
	ListPendingOrders(ctx context.Context) ([]store.Order, error)
	ListFinishedOrders(ctx context.Context) ([]store.Order, error)
	ListAllOrders(ctx context.Context) ([]store.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (store.Order, error)
}

// PlaceOrderRequest is the validated input for one checkout.
type PlaceOrderRequest struct {
	Table string
	Notes string
	Items []PlaceOrderItem
}

// PlaceOrderItem is a single cart line.
type PlaceOrderItem struct {
	Name  string
	Qty   int
	Price float64
}

// OrderService owns the order lifecycle.
type OrderService struct {
	store OrderStore
	now   func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(st OrderStore) *OrderService {
	return &OrderService{store: st, now: time.Now}
}

// PlaceOrder flattens a cart into one persisted row per line. All rows share
// one submission id, table, notes, and creation timestamp; that linkage is
// what the dashboard later reassembles into a logical cart.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) ([]store.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, ErrItemName
		}
		if item.Qty < 1 {
			return nil, ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, ErrInvalidPrice
		}
	}

	table := strings.TrimSpace(req.Table)
	if table == "" {
		table = enum.TableWalkIn
	}

	submissionID := uuid.NewString()
	createdAt := s.now().UTC()

	orders := make([]store.Order, len(req.Items))
	for i, item := range req.Items {
		orders[i] = store.Order{
			ID:           uuid.NewString(),
			SubmissionID: submissionID,
			Table:        table,
			Name:         strings.TrimSpace(item.Name),
			Qty:          item.Qty,
			Price:        item.Price,
			Status:       enum.OrderStatusPending,
			Notes:        req.Notes,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
	}

	if err := s.store.InsertOrders(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPending returns pending orders oldest-first, preserving kitchen FIFO.
func (s *OrderService) ListPending(ctx context.Context) ([]store.Order, error) {
	return s.store.ListPendingOrders(ctx)
}

// ListFinished returns completed/canceled orders newest-updated-first.
func (s *OrderService) ListFinished(ctx context.Context) ([]store.Order, error) {
	return s.store.ListFinishedOrders(ctx)
}

// ListAll returns every order newest-created-first.
func (s *OrderService) ListAll(ctx context.Context) ([]store.Order, error) {
	return s.store.ListAllOrders(ctx)
}

// TransitionStatus moves one pending order to a terminal status. Completed and
// canceled are terminal: a second transition fails with store.ErrAlreadyFinal.
func (s *OrderService) TransitionStatus(ctx context.Context, id, status string) (store.Order, error) {
	if status != enum.OrderStatusCompleted && status != enum.OrderStatusCanceled {
		return store.Order{}, ErrInvalidStatus
	}
	return s.store.UpdateOrderStatus(ctx, id, status, s.now().UTC())
}

// BulkResult is the outcome of one member transition in a bulk action.
type BulkResult struct {
	ID    string
	Order store.Order
	Err   error
}

// BulkTransition applies TransitionStatus to every id concurrently and waits
// for all of them. Succeeded members are never reverted when others fail; the
// caller reports the group as failed and staff retry the remainder.
func (s *OrderService) BulkTransition(ctx context.Context, ids []string, status string) ([]BulkResult, error) {
	if status != enum.OrderStatusCompleted && status != enum.OrderStatusCanceled {
		return nil, ErrInvalidStatus
	}
	if len(ids) == 0 {
		return nil, ErrEmptyItems
	}

	results := make([]BulkResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			order, err := s.store.UpdateOrderStatus(ctx, id, status, s.now().UTC())
			results[i] = BulkResult{ID: id, Order: order, Err: err}
		}(i, id)
	}
	wg.Wait()
	return results, nil
}
