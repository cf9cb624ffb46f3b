package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/leafcart/storefront/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.ErrConflict
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// Count reports the number of stored orders. Test helper.
func (r *OrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

type LineItemRepository struct {
	mu    sync.RWMutex
	items []*domain.LineItem
}

func NewLineItemRepository() *LineItemRepository {
	return &LineItemRepository{}
}

func (r *LineItemRepository) Insert(ctx context.Context, item *domain.LineItem) error {
	_ = ctx
	if item == nil || item.OrderID == "" {
		return fmt.Errorf("line item repository: order id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *item
	r.items = append(r.items, &clone)
	return nil
}

func (r *LineItemRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.LineItem, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.LineItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *LineItemRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.OrderID != orderID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

// Count reports the number of stored line items. Test helper.
func (r *LineItemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
