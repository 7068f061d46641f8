package services

import (
	"context"
	"errors"
	"sync"

	"lanka-connect/backend/internal/models"
)

type fakeStatusWriter struct {
	mu       sync.Mutex
	statuses map[string]string
	calls    int
	failNext error
}

func newFakeStatusWriter() *fakeStatusWriter {
	return &fakeStatusWriter{statuses: map[string]string{}}
}

func (f *fakeStatusWriter) UpdateStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.statuses[id] = status
	f.calls++
	return nil
}

type fakeNotificationStore struct {
	mu      sync.Mutex
	created []*models.Notification
	failure error
}

func (f *fakeNotificationStore) Create(ctx context.Context, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	f.created = append(f.created, notif)
	return nil
}

type fakeDeduper struct {
	seen    map[string]bool
	failure error
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{seen: map[string]bool{}}
}

func (f *fakeDeduper) FirstSeen(ctx context.Context, key string) (bool, error) {
	if f.failure != nil {
		return false, f.failure
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type aggregate struct {
	avg   float64
	count int64
}

// fakeRatingStore mirrors the repository's optimistic concurrency: apply
// runs outside the lock and the write only lands if the observed count is
// still current, otherwise the attempt re-reads and recomputes.
type fakeRatingStore struct {
	mu         sync.Mutex
	aggregates map[string]aggregate
	conflicts  int
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{aggregates: map[string]aggregate{}}
}

func (f *fakeRatingStore) AtomicUpdateRating(ctx context.Context, providerID string, apply func(avg float64, count int64) (float64, int64)) error {
	for {
		f.mu.Lock()
		current := f.aggregates[providerID]
		f.mu.Unlock()

		newAvg, newCount := apply(current.avg, current.count)

		f.mu.Lock()
		if f.aggregates[providerID].count != current.count {
			f.conflicts++
			f.mu.Unlock()
			continue
		}
		f.aggregates[providerID] = aggregate{avg: newAvg, count: newCount}
		f.mu.Unlock()
		return nil
	}
}

type fakeRecipientStore struct {
	users       map[string]*models.User
	adminTokens []string
	failure     error
}

func (f *fakeRecipientStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (f *fakeRecipientStore) AdminFCMTokens(ctx context.Context) ([]string, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	return f.adminTokens, nil
}

type sentPush struct {
	token   string
	payload models.PushPayload
}

type sentMulticast struct {
	tokens  []string
	payload models.PushPayload
}

type fakeDispatcher struct {
	singles    []sentPush
	multicasts []sentMulticast
	failure    error
}

func (f *fakeDispatcher) SendOne(ctx context.Context, token string, payload models.PushPayload) error {
	if f.failure != nil {
		return f.failure
	}
	f.singles = append(f.singles, sentPush{token: token, payload: payload})
	return nil
}

func (f *fakeDispatcher) SendMulticast(ctx context.Context, tokens []string, payload models.PushPayload) (int, int, error) {
	if f.failure != nil {
		return 0, 0, f.failure
	}
	f.multicasts = append(f.multicasts, sentMulticast{tokens: tokens, payload: payload})
	return len(tokens), 0, nil
}

var errDownstream = errors.New("downstream failure")
