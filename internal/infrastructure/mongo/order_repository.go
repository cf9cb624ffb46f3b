package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Status    string    `bson:"status"`
	OrderDate time.Time `bson:"order_date"`
}

type lineItemDoc struct {
	OrderID        string `bson:"order_id"`
	ProductID      string `bson:"product_id"`
	Quantity       int    `bson:"quantity"`
	PriceEachCents int64  `bson:"price_each_cents"`
}

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	doc := orderDoc{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		OrderDate: order.OrderDate,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &domain.Order{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Status:    domain.Status(doc.Status),
		OrderDate: doc.OrderDate,
	}, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type LineItemRepository struct {
	collection *mongo.Collection
}

func NewLineItemRepository(db *mongo.Database) *LineItemRepository {
	return &LineItemRepository{collection: db.Collection("order_details")}
}

func (r *LineItemRepository) Insert(ctx context.Context, item *domain.LineItem) error {
	doc := lineItemDoc{
		OrderID:        item.OrderID,
		ProductID:      item.ProductID,
		Quantity:       item.Quantity,
		PriceEachCents: item.PriceEachCents,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert line item: %w", err)
	}
	return nil
}

func (r *LineItemRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.LineItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.LineItem
	for cursor.Next(ctx) {
		var doc lineItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode line item: %w", err)
		}
		out = append(out, &domain.LineItem{
			OrderID:        doc.OrderID,
			ProductID:      doc.ProductID,
			Quantity:       doc.Quantity,
			PriceEachCents: doc.PriceEachCents,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return out, nil
}

func (r *LineItemRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	return nil
}
