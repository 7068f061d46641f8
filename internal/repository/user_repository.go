package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lanka-connect/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxRatingAttempts   = 5
	adminTokensCacheKey = "admin_fcm_tokens"
	adminTokensCacheTTL = 5 * time.Minute
)

type UserRepository struct {
	col   *mongo.Collection
	redis *redis.Client
}

// NewUserRepository wires the users collection. The Redis client is optional;
// without it the admin token query always hits Mongo.
func NewUserRepository(db *mongo.Database, rdb *redis.Client) *UserRepository {
	return &UserRepository{col: db.Collection("users"), redis: rdb}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return &user, nil
}

// AdminFCMTokens returns the device tokens of every admin user, skipping
// admins without one. Results are cached in Redis for a short window since
// the broadcast path may fire in bursts.
func (r *UserRepository) AdminFCMTokens(ctx context.Context) ([]string, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, adminTokensCacheKey).Result()
		if err == nil {
			var tokens []string
			if err := json.Unmarshal([]byte(cached), &tokens); err == nil {
				return tokens, nil
			}
		}
	}

	cursor, err := r.col.Find(ctx,
		bson.M{"role": models.RoleAdmin},
		options.Find().SetProjection(bson.M{"fcmToken": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer cursor.Close(ctx)

	tokens := []string{}
	for cursor.Next(ctx) {
		var admin models.User
		if err := cursor.Decode(&admin); err != nil {
			continue
		}
		if admin.FCMToken != "" {
			tokens = append(tokens, admin.FCMToken)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admins: %w", err)
	}

	if r.redis != nil {
		if data, err := json.Marshal(tokens); err == nil {
			if err := r.redis.Set(ctx, adminTokensCacheKey, data, adminTokensCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache admin tokens")
			}
		}
	}
	return tokens, nil
}

// AtomicUpdateRating applies a read-modify-write to a provider's rating
// aggregate under optimistic concurrency. The previously observed raw
// reviewCount value acts as the version guard: only this path mutates the
// aggregate pair and reviewCount is monotonic, so a matched write proves no
// concurrent review landed in between. Conflicts re-read and recompute, up
// to maxRatingAttempts.
//
// Corrupted (non-numeric) stored values are coerced to zero before apply
// runs, so a damaged aggregate resets instead of poisoning every later
// review.
func (r *UserRepository) AtomicUpdateRating(ctx context.Context, providerID string, apply func(avg float64, count int64) (float64, int64)) error {
	for attempt := 0; attempt < maxRatingAttempts; attempt++ {
		var raw bson.M
		err := r.col.FindOne(ctx, bson.M{"_id": providerID}).Decode(&raw)
		exists := true
		if errors.Is(err, mongo.ErrNoDocuments) {
			exists = false
			raw = bson.M{}
		} else if err != nil {
			return fmt.Errorf("failed to read provider %s: %w", providerID, err)
		}

		avg := coerceNumber(raw["averageRating"])
		count := int64(coerceNumber(raw["reviewCount"]))
		if count < 0 {
			count = 0
		}
		newAvg, newCount := apply(avg, count)

		update := bson.M{"$set": bson.M{
			"averageRating": newAvg,
			"reviewCount":   newCount,
			"updatedAt":     time.Now().UTC(),
		}}

		filter := bson.M{"_id": providerID}
		if rawCount, ok := raw["reviewCount"]; ok {
			filter["reviewCount"] = rawCount
		} else {
			filter["reviewCount"] = bson.M{"$exists": false}
		}

		var opts []*options.UpdateOptions
		if !exists {
			opts = append(opts, options.Update().SetUpsert(true))
		}
		res, err := r.col.UpdateOne(ctx, filter, update, opts...)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// lost the race to create the provider document
				continue
			}
			return fmt.Errorf("failed to update rating for %s: %w", providerID, err)
		}
		if res.MatchedCount > 0 || res.UpsertedCount > 0 {
			return nil
		}
		log.Debug().Str("providerId", providerID).Int("attempt", attempt+1).
			Msg("rating update conflict, retrying")
	}
	return fmt.Errorf("rating update for %s: retries exhausted", providerID)
}

func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": user},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// coerceNumber pulls a float64 out of whatever bson handed back, falling
// back to 0 for missing or non-numeric values.
func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
