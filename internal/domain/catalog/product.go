package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrNameRequired = errors.New("catalog: product name is required")
	ErrInvalidPrice = errors.New("catalog: price must be zero or greater")
)

// Product is immutable once created; there is no update path in this scope.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	ImageURL   string
	CreatedAt  time.Time
}

func New(id, name string, priceCents int64, imageURL string) (*Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if priceCents < 0 {
		return nil, ErrInvalidPrice
	}
	return &Product{
		ID:         id,
		Name:       name,
		PriceCents: priceCents,
		ImageURL:   imageURL,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
