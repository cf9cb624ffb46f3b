package customer

import "context"

type Repository interface {
	Insert(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	// Update overwrites the whole record, cart included. Last writer wins;
	// there is no optimistic version check on the backing store.
	Update(ctx context.Context, customer *Customer) error
}
