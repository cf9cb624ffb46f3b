package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: already exists")
	ErrUserRequired    = errors.New("order: user id is required")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("order: price must be zero or greater")
	ErrEmptyCart       = errors.New("order: cart is empty")
)

type Status string

// Orders only exist once payment has cleared; a failed charge never
// produces a record.
const StatusPaid Status = "paid"

type Order struct {
	ID        string
	UserID    string
	Status    Status
	OrderDate time.Time
}

func New(id, userID string) (*Order, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return &Order{
		ID:        id,
		UserID:    userID,
		Status:    StatusPaid,
		OrderDate: time.Now().UTC(),
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

// LineItem is one product-quantity-price record within a confirmed order.
// PriceEachCents captures the price at checkout time.
type LineItem struct {
	OrderID        string
	ProductID      string
	Quantity       int
	PriceEachCents int64
}

func NewLineItem(orderID, productID string, quantity int, priceEachCents int64) (*LineItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if priceEachCents < 0 {
		return nil, ErrInvalidPrice
	}
	return &LineItem{
		OrderID:        orderID,
		ProductID:      productID,
		Quantity:       quantity,
		PriceEachCents: priceEachCents,
	}, nil
}
