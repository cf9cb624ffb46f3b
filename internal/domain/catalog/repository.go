package catalog

import "context"

type Repository interface {
	Insert(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
}
