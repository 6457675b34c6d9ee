package result

import (
	"context"
	"log/slog"

	"github.com/myatmin/twodlive/internal/dependencies/clock"
	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage"
)

// Publisher fans a result event out to connected viewers
type Publisher interface {
	BroadcastResult(result model.ResultEvent)
}

// Feed fetches the authoritative live value from the upstream source
type Feed interface {
	Fetch(ctx context.Context) (model.LiveResult, error)
}

// Service funnels both ingestion entry points (manual admin entry and the
// external feed) into a single publish path
type Service struct {
	storage storage.Storage
	hub     Publisher
	feed    Feed
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new result Service
func New(storage storage.Storage, hub Publisher, feed Feed, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		hub:     hub,
		feed:    feed,
		clock:   clock,
		logger:  logger.With(slog.String("component", "result")),
	}
}

// Publish validates a two-digit value, stamps it, stores it as the latest
// result and broadcasts it to all connected viewers
func (s *Service) Publish(ctx context.Context, value string) (*model.ResultEvent, error) {
	if len(value) != 2 {
		return nil, model.ErrInvalidResult
	}

	event := model.ResultEvent{
		Value:     value,
		EmittedAt: s.clock.Now(),
	}

	// The broadcast contract does not require durability; a failed save
	// must not block delivery to live viewers.
	if err := s.storage.SaveLatestResult(ctx, &event); err != nil {
		s.logger.Warn("failed to persist latest result", slog.Any("error", err))
	}

	s.hub.BroadcastResult(event)
	s.logger.Info("result published", slog.String("value", value))

	return &event, nil
}

// PublishFromFeed pulls the current value from the upstream feed and
// publishes it. A feed outage surfaces as model.ErrUpstreamUnavailable
// rather than crashing the ingestion path.
func (s *Service) PublishFromFeed(ctx context.Context) (*model.ResultEvent, error) {
	liveResult, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.Publish(ctx, liveResult.Twod)
}

// Latest returns the most recently published result
func (s *Service) Latest(ctx context.Context) (*model.ResultEvent, error) {
	return s.storage.GetLatestResult(ctx)
}
