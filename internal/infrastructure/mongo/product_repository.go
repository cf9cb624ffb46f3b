package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type productDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	PriceCents int64     `bson:"price_cents"`
	ImageURL   string    `bson:"image_url"`
	CreatedAt  time.Time `bson:"created_at"`
}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	doc := productDoc{
		ID:         product.ID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
		ImageURL:   product.ImageURL,
		CreatedAt:  product.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var doc productDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return out, nil
}

func (d productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:         d.ID,
		Name:       d.Name,
		PriceCents: d.PriceCents,
		ImageURL:   d.ImageURL,
		CreatedAt:  d.CreatedAt,
	}
}
