package services

import (
	"context"
	"time"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const watcherRestartDelay = 5 * time.Second

// Watcher consumes MongoDB change streams and dispatches document events to
// the pipeline handlers. Each collection gets its own long-lived consumer
// goroutine; streams are reopened after transient errors, which gives the
// pipeline at-least-once event delivery. Handlers are written to tolerate
// redelivery.
type Watcher struct {
	db         *mongo.Database
	normalizer *StatusNormalizer
	notifier   *ApprovalNotifier
	aggregator *RatingAggregator
	relay      *PushRelay
}

func NewWatcher(db *mongo.Database, normalizer *StatusNormalizer, notifier *ApprovalNotifier, aggregator *RatingAggregator, relay *PushRelay) *Watcher {
	return &Watcher{
		db:         db,
		normalizer: normalizer,
		notifier:   notifier,
		aggregator: aggregator,
		relay:      relay,
	}
}

// Start launches the consumer goroutines. They stop when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchServices(ctx)
	go w.watchReviews(ctx)
	go w.watchNotifications(ctx)
}

type serviceChange struct {
	OperationType            string          `bson:"operationType"`
	FullDocument             *models.Service `bson:"fullDocument"`
	FullDocumentBeforeChange *models.Service `bson:"fullDocumentBeforeChange"`
	DocumentKey              struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

func (w *Watcher) watchServices(ctx context.Context) {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{
		{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
	}}}}
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	w.consume(ctx, "services", pipeline, opts, func(ctx context.Context, raw bson.Raw) {
		var ev serviceChange
		if err := bson.Unmarshal(raw, &ev); err != nil {
			log.Warn().Err(err).Msg("failed to decode service change event")
			return
		}
		if ev.FullDocument == nil {
			return
		}
		if ev.FullDocument.ID == "" {
			ev.FullDocument.ID = ev.DocumentKey.ID
		}

		var err error
		switch ev.OperationType {
		case "insert":
			err = w.normalizer.HandleServiceCreated(ctx, ev.FullDocument)
		default:
			if ev.FullDocumentBeforeChange != nil && ev.FullDocumentBeforeChange.ID == "" {
				ev.FullDocumentBeforeChange.ID = ev.DocumentKey.ID
			}
			err = w.notifier.HandleServiceUpdated(ctx, ev.FullDocumentBeforeChange, ev.FullDocument)
		}
		if err != nil {
			log.Error().Err(err).Str("serviceId", ev.DocumentKey.ID).
				Msg("service event handler failed")
		}
	})
}

type reviewChange struct {
	FullDocument *models.Review `bson:"fullDocument"`
	DocumentKey  struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

func (w *Watcher) watchReviews(ctx context.Context) {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{
		{Key: "operationType", Value: "insert"},
	}}}}

	w.consume(ctx, "reviews", pipeline, options.ChangeStream(), func(ctx context.Context, raw bson.Raw) {
		var ev reviewChange
		if err := bson.Unmarshal(raw, &ev); err != nil {
			log.Warn().Err(err).Msg("failed to decode review change event")
			return
		}
		if ev.FullDocument == nil {
			return
		}
		if ev.FullDocument.ID == "" {
			ev.FullDocument.ID = ev.DocumentKey.ID
		}
		if err := w.aggregator.HandleReviewCreated(ctx, ev.FullDocument); err != nil {
			log.Error().Err(err).Str("reviewId", ev.DocumentKey.ID).
				Msg("review event handler failed")
		}
	})
}

type notificationChange struct {
	FullDocument *models.Notification `bson:"fullDocument"`
	DocumentKey  struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

func (w *Watcher) watchNotifications(ctx context.Context) {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{
		{Key: "operationType", Value: "insert"},
	}}}}

	w.consume(ctx, "notifications", pipeline, options.ChangeStream(), func(ctx context.Context, raw bson.Raw) {
		var ev notificationChange
		if err := bson.Unmarshal(raw, &ev); err != nil {
			log.Warn().Err(err).Msg("failed to decode notification change event")
			return
		}
		if ev.FullDocument == nil {
			return
		}
		if ev.FullDocument.ID == "" {
			ev.FullDocument.ID = ev.DocumentKey.ID
		}
		if err := w.relay.HandleNotificationCreated(ctx, ev.FullDocument); err != nil {
			log.Error().Err(err).Str("notificationId", ev.DocumentKey.ID).
				Msg("notification event handler failed")
		}
	})
}

// consume runs one change stream until ctx is cancelled, reopening it after
// errors.
func (w *Watcher) consume(ctx context.Context, collection string, pipeline mongo.Pipeline, opts *options.ChangeStreamOptions, handle func(ctx context.Context, raw bson.Raw)) {
	for {
		stream, err := w.db.Collection(collection).Watch(ctx, pipeline, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("collection", collection).
				Msg("failed to open change stream, retrying")
			select {
			case <-time.After(watcherRestartDelay):
				continue
			case <-ctx.Done():
				return
			}
		}

		log.Info().Str("collection", collection).Msg("change stream opened")
		for stream.Next(ctx) {
			handle(ctx, stream.Current)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("collection", collection).
				Msg("change stream interrupted, reopening")
		}
		stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}
		select {
		case <-time.After(watcherRestartDelay):
		case <-ctx.Done():
			return
		}
	}
}
