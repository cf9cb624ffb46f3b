package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("customer: not found")
	ErrNameRequired    = errors.New("customer: name is required")
	ErrEmailRequired   = errors.New("customer: email is required")
	ErrInvalidQuantity = errors.New("customer: quantity must be greater than zero")
)

// Entry is one pending cart line: how many units of a product the customer
// intends to buy.
type Entry struct {
	Quantity int
}

// Cart maps product id to its pending entry. It lives embedded in the
// customer record, which is the single source of truth for cart state.
type Cart map[string]Entry

// Add merges quantity into an existing entry or inserts a new one.
func (c Cart) Add(productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	entry := c[productID]
	entry.Quantity += quantity
	c[productID] = entry
	return nil
}

func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	clone := make(Cart, len(c))
	for id, entry := range c {
		clone[id] = entry
	}
	return clone
}

type Customer struct {
	ID           string
	Name         string
	Email        string
	Address      string
	RegisteredAt time.Time
	Cart         Cart
}

func New(id, name, email, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	return &Customer{
		ID:           id,
		Name:         name,
		Email:        email,
		Address:      address,
		RegisteredAt: time.Now().UTC(),
		Cart:         make(Cart),
	}, nil
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Cart = c.Cart.Clone()
	return &clone
}
