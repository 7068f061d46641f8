package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lanka-connect/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{db: db, col: db.Collection("services")}
}

// EnsurePreImages enables pre-images on the services collection so update
// change streams carry the document state before the write. Without it the
// approval trigger cannot tell a real transition from a repeated write.
func (r *ServiceRepository) EnsurePreImages(ctx context.Context) error {
	opts := options.CreateCollection().
		SetChangeStreamPreAndPostImages(bson.M{"enabled": true})
	err := r.db.CreateCollection(ctx, "services", opts)
	if err == nil {
		return nil
	}

	res := r.db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: "services"},
		{Key: "changeStreamPreAndPostImages", Value: bson.D{{Key: "enabled", Value: true}}},
	})
	if res.Err() != nil {
		return fmt.Errorf("failed to enable pre-images on services: %w", res.Err())
	}
	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *ServiceRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to update service %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) Upsert(ctx context.Context, svc *models.Service) error {
	now := time.Now().UTC()
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = now
	}
	svc.UpdatedAt = now
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": svc.ID},
		bson.M{"$set": svc},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert service %s: %w", svc.ID, err)
	}
	return nil
}
