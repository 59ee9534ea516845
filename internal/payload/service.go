package payload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/dbug/internal/clock"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/pubsub"
)

// Service validates, stores and announces payloads.
type Service struct {
	repo   Repository
	broker *pubsub.Broker[Change]
	clock  clock.Clock
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for ReceivedAt.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service over repo.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		broker: pubsub.NewBroker[Change](),
		clock:  clock.Real{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe streams store changes until ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// Close stops event delivery. The repository is not closed.
func (s *Service) Close() {
	s.broker.Close()
}

// Add stores body as received now on path.
func (s *Service) Add(ctx context.Context, path string, body []byte) (*Payload, error) {
	return s.AddAt(ctx, path, body, s.clock.Now())
}

// AddAt stores body with an explicit receive time.
func (s *Service) AddAt(ctx context.Context, path string, body []byte, at time.Time) (*Payload, error) {
	normalized, err := Normalize(body)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = "/"
	}

	p := &Payload{
		ID:         s.newID(),
		ReceivedAt: at.UTC().Truncate(time.Millisecond),
		Path:       path,
		Body:       normalized,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving payload: %w", err)
	}

	log.Info(log.CatDB, "payload stored", "id", p.ID, "path", p.Path, "bytes", p.Size())
	s.broker.Publish(pubsub.CreatedEvent, Change{Payload: p})
	return p, nil
}

// List returns up to limit payloads, newest first. limit <= 0 means all.
func (s *Service) List(ctx context.Context, limit int) ([]*Payload, error) {
	payloads, err := s.repo.List(ctx, ListFilter{Limit: max(limit, 0)})
	if err != nil {
		return nil, fmt.Errorf("listing payloads: %w", err)
	}
	return payloads, nil
}

// Get returns the payload with id.
func (s *Service) Get(ctx context.Context, id string) (*Payload, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes the payload with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info(log.CatDB, "payload deleted", "id", id)
	s.broker.Publish(pubsub.DeletedEvent, Change{ID: id})
	return nil
}

// Clear removes every payload and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing payloads: %w", err)
	}
	log.Info(log.CatDB, "payloads cleared", "count", n)
	s.broker.Publish(pubsub.ClearedEvent, Change{Removed: n})
	return n, nil
}

// Count returns the number of stored payloads.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
