package favorites

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/events"
	"github.com/chrisdamba/takeaway/internal/preferences"
)

// Service owns the favorite set and keeps the preference store in step with
// it.
type Service struct {
	store     preferences.Store
	publisher events.Publisher
	topic     string
	key       string
	logger    *zap.Logger
	now       func() time.Time

	set *Set
}

type Option func(*Service)

// WithPublisher announces every toggle on topic.
func WithPublisher(p events.Publisher, topic string) Option {
	return func(s *Service) {
		s.publisher = p
		s.topic = topic
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store preferences.Store, key string, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: events.Noop{},
		key:       key,
		logger:    logger,
		now:       time.Now,
		set:       NewSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory set with the stored entry. A missing or
// unreadable entry leaves an empty set.
func (s *Service) Load(ctx context.Context) *Set {
	value, ok, err := s.store.Get(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Warn("failed to read favorites, starting empty", zap.String("key", s.key), zap.Error(err))
		s.set = NewSet()
	case !ok:
		s.set = NewSet()
	default:
		s.set = NewSet(value...)
	}
	return s.set
}

// Set is the current favorite set.
func (s *Service) Set() *Set {
	return s.set
}

func (s *Service) Contains(name string) bool {
	return s.set.Contains(name)
}

// Toggle flips name in the favorite set and persists the result at once.
// The in-memory set changes even when persisting or publishing fails; the
// failure is returned.
func (s *Service) Toggle(ctx context.Context, name string) (bool, error) {
	favorite := s.set.Toggle(name)
	s.logger.Debug("favorite toggled", zap.String("name", name), zap.Bool("favorite", favorite))

	if err := s.store.Set(ctx, s.key, s.set.Names()); err != nil {
		return favorite, fmt.Errorf("failed to persist favorites: %w", err)
	}

	payload, err := events.NewFavoriteToggled(name, favorite, s.now()).Encode()
	if err != nil {
		return favorite, fmt.Errorf("failed to encode favorite event: %w", err)
	}
	if err := s.publisher.WriteMessage(s.topic, payload); err != nil {
		return favorite, fmt.Errorf("failed to publish favorite event: %w", err)
	}
	return favorite, nil
}
