package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/leafcart/storefront/internal/domain/catalog"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*domain.Product)}
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product.Clone()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, product.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
