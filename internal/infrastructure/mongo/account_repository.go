package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/account"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type manufacturerDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Company      string    `bson:"company"`
	RegisteredAt time.Time `bson:"registration_date"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	CredentialID string    `bson:"credential_id"`
	RegisteredAt time.Time `bson:"registration_date"`
}

type ManufacturerRepository struct {
	collection *mongo.Collection
}

func NewManufacturerRepository(db *mongo.Database) *ManufacturerRepository {
	return &ManufacturerRepository{collection: db.Collection("manufacturers")}
}

func (r *ManufacturerRepository) Insert(ctx context.Context, manufacturer *domain.Manufacturer) error {
	doc := manufacturerDoc{
		ID:           manufacturer.ID,
		Name:         manufacturer.Name,
		Email:        manufacturer.Email,
		Company:      manufacturer.Company,
		RegisteredAt: manufacturer.RegisteredAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert manufacturer: %w", err)
	}
	return nil
}

func (r *ManufacturerRepository) FindByID(ctx context.Context, id string) (*domain.Manufacturer, error) {
	var doc manufacturerDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get manufacturer: %w", err)
	}
	return &domain.Manufacturer{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		Company:      doc.Company,
		RegisteredAt: doc.RegisteredAt,
	}, nil
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		CredentialID: user.CredentialID,
		RegisteredAt: user.RegisteredAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &domain.User{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		CredentialID: doc.CredentialID,
		RegisteredAt: doc.RegisteredAt,
	}, nil
}
