package mongo

import (
	"context"
	"fmt"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/activity"
	"go.mongodb.org/mongo-driver/mongo"
)

type activityDoc struct {
	ID       string    `bson:"_id"`
	UserID   string    `bson:"user_id"`
	Activity string    `bson:"activity"`
	Date     time.Time `bson:"date"`
}

type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{collection: db.Collection("activity_logs")}
}

func (r *ActivityRepository) Append(ctx context.Context, entry domain.Entry) error {
	doc := activityDoc{
		ID:       entry.ID,
		UserID:   entry.UserID,
		Activity: entry.Activity,
		Date:     entry.Date,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}
