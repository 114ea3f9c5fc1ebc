// Package memory holds process-local stores for short-lived UI state.
package memory

import (
	"context"
	"sync"
	"time"

	"prizedeck/domain/core"
	"prizedeck/internal/errors"
	"prizedeck/ports"

	"go.uber.org/zap"
)

// UploadStore is a thread-safe in-memory upload store. Entries expire ttl
// after they were stored; expired entries are removed on the next Put.
type UploadStore struct {
	mu      sync.RWMutex
	uploads map[core.ID]*ports.Upload
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// Option configures an UploadStore.
type Option func(*UploadStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *UploadStore) { s.now = now }
}

// WithLogger sets the logger used for sweeps.
func WithLogger(log *zap.Logger) Option {
	return func(s *UploadStore) { s.log = log.Named("uploads") }
}

// NewUploadStore creates an empty store.
func NewUploadStore(ttl time.Duration, opts ...Option) *UploadStore {
	s := &UploadStore{
		uploads: make(map[core.ID]*ports.Upload),
		ttl:     ttl,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores the upload under a new id and returns it.
func (s *UploadStore) Put(ctx context.Context, upload *ports.Upload) (core.ID, error) {
	if upload == nil {
		return "", errors.InvalidInput("upload is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	s.Sweep(now)

	stored := *upload
	stored.ID = core.NewID()
	stored.CreatedAt = now

	s.mu.Lock()
	s.uploads[stored.ID] = &stored
	s.mu.Unlock()

	return stored.ID, nil
}

// Get returns the upload, or NOT_FOUND when it is unknown or expired.
func (s *UploadStore) Get(ctx context.Context, id core.ID) (*ports.Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	upload, ok := s.uploads[id]
	s.mu.RUnlock()

	if !ok || s.expired(upload, s.now()) {
		return nil, errors.NotFound("upload")
	}
	return upload, nil
}

// Sweep drops every upload expired at now and returns how many it removed.
func (s *UploadStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, upload := range s.uploads {
		if s.expired(upload, now) {
			delete(s.uploads, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("Expired uploads removed", zap.Int("count", removed), zap.Int("remaining", len(s.uploads)))
	}
	return removed
}

// Clear drops every upload and returns how many there were.
func (s *UploadStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.uploads)
	s.uploads = make(map[core.ID]*ports.Upload)
	return n
}

// Len returns the number of stored uploads, expired or not.
func (s *UploadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}

func (s *UploadStore) expired(upload *ports.Upload, now time.Time) bool {
	return s.ttl > 0 && now.Sub(upload.CreatedAt) >= s.ttl
}
