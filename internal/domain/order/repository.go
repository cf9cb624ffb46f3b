package order

import "context"

type Repository interface {
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	// Delete exists for the compensating path of order placement only.
	Delete(ctx context.Context, id string) error
}

type LineItemRepository interface {
	Insert(ctx context.Context, item *LineItem) error
	ListByOrder(ctx context.Context, orderID string) ([]*LineItem, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}
