package services

import (
	"context"
	"fmt"
	"math"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
)

// RatingStore is the storage side of the rating pipeline: an atomic
// read-modify-write over a provider's (averageRating, reviewCount) pair.
// Implementations retry internally on write conflicts.
type RatingStore interface {
	AtomicUpdateRating(ctx context.Context, providerID string, apply func(avg float64, count int64) (float64, int64)) error
}

// RatingAggregator maintains each provider's running rating average as
// reviews are created. Each valid review contributes exactly once.
type RatingAggregator struct {
	users RatingStore
}

func NewRatingAggregator(users RatingStore) *RatingAggregator {
	return &RatingAggregator{users: users}
}

func (a *RatingAggregator) HandleReviewCreated(ctx context.Context, review *models.Review) error {
	if review == nil {
		return nil
	}

	rating, ok := models.ParseRating(review.Rating)
	if review.ProviderID == "" || !ok || rating < 1 || rating > 5 {
		log.Warn().
			Str("reviewId", review.ID).
			Str("providerId", review.ProviderID).
			Interface("rawRating", review.Rating).
			Msg("skipping rating aggregate update due to invalid review payload")
		return nil
	}

	err := a.users.AtomicUpdateRating(ctx, review.ProviderID, func(avg float64, count int64) (float64, int64) {
		newCount := count + 1
		newAvg := (avg*float64(count) + rating) / float64(newCount)
		return round2(newAvg), newCount
	})
	if err != nil {
		return fmt.Errorf("failed to update rating aggregate for provider %s: %w", review.ProviderID, err)
	}

	log.Info().Str("reviewId", review.ID).Str("providerId", review.ProviderID).
		Msg("updated provider rating aggregate")
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
