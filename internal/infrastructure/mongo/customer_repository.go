package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/customer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type cartEntryDoc struct {
	Quantity int `bson:"quantity"`
}

type customerDoc struct {
	ID           string                  `bson:"_id"`
	Name         string                  `bson:"name"`
	Email        string                  `bson:"email"`
	Address      string                  `bson:"address"`
	RegisteredAt time.Time               `bson:"registration_date"`
	Cart         map[string]cartEntryDoc `bson:"cart"`
}

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{collection: db.Collection("customers")}
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *domain.Customer) error {
	if _, err := r.collection.InsertOne(ctx, toCustomerDoc(customer)); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var doc customerDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the whole record, cart included. Last writer wins.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": customer.ID}, toCustomerDoc(customer))
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toCustomerDoc(c *domain.Customer) customerDoc {
	cart := make(map[string]cartEntryDoc, len(c.Cart))
	for productID, entry := range c.Cart {
		cart[productID] = cartEntryDoc{Quantity: entry.Quantity}
	}
	return customerDoc{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
		Cart:         cart,
	}
}

func (d customerDoc) toDomain() *domain.Customer {
	cart := make(domain.Cart, len(d.Cart))
	for productID, entry := range d.Cart {
		cart[productID] = domain.Entry{Quantity: entry.Quantity}
	}
	return &domain.Customer{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Address:      d.Address,
		RegisteredAt: d.RegisteredAt,
		Cart:         cart,
	}
}
