package repository

import (
	"context"
	"fmt"
	"time"

	"lanka-connect/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) Upsert(ctx context.Context, booking *models.Booking) error {
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": booking},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert booking %s: %w", booking.ID, err)
	}
	return nil
}
