package boarding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/kafka"
	"github.com/Domenick1991/busboarding/internal/metrics"
	"github.com/Domenick1991/busboarding/internal/repository"
	"github.com/Domenick1991/busboarding/internal/sequencer"
	"github.com/Domenick1991/busboarding/internal/telemetry"
	"github.com/google/uuid"
)

type BoardingUseCase interface {
	Generate(ctx context.Context, records []domain.RawRecord) (*domain.BoardingRun, error)
	GetRun(ctx context.Context, id string) (*domain.BoardingRun, error)
	PurgeExpiredRuns(ctx context.Context) (int64, error)
}

type Cache interface {
	GetRunByDigest(ctx context.Context, digest string) (*domain.BoardingRun, error)
	GetRunByID(ctx context.Context, id string) (*domain.BoardingRun, error)
	SetRun(ctx context.Context, run *domain.BoardingRun) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BoardingService wraps the sequencer with storage, caching and events.
// Every collaborator is optional; nil ones are skipped.
type BoardingService struct {
	runs          repository.SequenceRepository
	cache         Cache
	producer      Producer
	sequenceTopic string
	retention     time.Duration
	metrics       *metrics.Boarding
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
}

type BoardingServiceOption func(*BoardingService)

func WithMetrics(m *metrics.Boarding) BoardingServiceOption {
	return func(s *BoardingService) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) BoardingServiceOption {
	return func(s *BoardingService) {
		s.logger = logger
	}
}

func NewBoardingService(
	runs repository.SequenceRepository,
	cache Cache,
	producer Producer,
	sequenceTopic string,
	retention time.Duration,
	opts ...BoardingServiceOption,
) *BoardingService {
	service := &BoardingService{
		runs:          runs,
		cache:         cache,
		producer:      producer,
		sequenceTopic: sequenceTopic,
		retention:     retention,
		logger:        slog.Default(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BoardingService) Generate(ctx context.Context, records []domain.RawRecord) (*domain.BoardingRun, error) {
	bookings, err := sequencer.Parse(records)
	if err != nil {
		s.metrics.ValidationFailed()
		return nil, err
	}

	digest := Digest(bookings)
	if s.cache != nil {
		cached, err := s.cache.GetRunByDigest(ctx, digest)
		if err != nil {
			s.logger.Warn("boarding cache lookup failed", "digest", digest, "error", err)
		} else if cached != nil {
			s.metrics.CacheHit()
			return cached, nil
		}
	}

	seq, err := sequencer.Generate(bookings)
	if err != nil {
		return nil, err
	}
	details, err := sequencer.Details(seq, bookings)
	if err != nil {
		return nil, err
	}

	run := &domain.BoardingRun{
		ID:            s.newID(),
		Digest:        digest,
		TotalBookings: len(seq),
		Sequence:      seq,
		Details:       details,
		CreatedAt:     s.now().UTC(),
	}
	logger := telemetry.WithRunID(s.logger, run.ID)

	if s.runs != nil {
		if err := s.runs.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.SetRun(ctx, run); err != nil {
			logger.Warn("boarding cache store failed", "error", err)
		}
	}
	s.metrics.RunGenerated(run.TotalBookings)

	if err := s.publish(ctx, run); err != nil {
		logger.Warn("failed to publish sequence event", "error", err)
	}
	logger.Info("boarding sequence generated", "bookings", run.TotalBookings)
	return run, nil
}

func (s *BoardingService) GetRun(ctx context.Context, id string) (*domain.BoardingRun, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrRunNotFound
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRunByID(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	if s.runs == nil {
		return nil, repository.ErrRunNotFound
	}
	return s.runs.GetByID(ctx, id)
}

// PurgeExpiredRuns deletes stored runs older than the retention window.
func (s *BoardingService) PurgeExpiredRuns(ctx context.Context) (int64, error) {
	if s.runs == nil || s.retention <= 0 {
		return 0, nil
	}
	return s.runs.DeleteBefore(ctx, s.now().Add(-s.retention))
}

func (s *BoardingService) publish(ctx context.Context, run *domain.BoardingRun) error {
	if s.producer == nil || s.sequenceTopic == "" {
		return nil
	}
	event := kafka.SequenceEvent{
		Type:          kafka.EventSequenceGenerated,
		RunID:         run.ID,
		Digest:        run.Digest,
		TotalBookings: run.TotalBookings,
		Sequence:      run.Sequence,
		CreatedAt:     run.CreatedAt,
	}
	return s.producer.Publish(ctx, s.sequenceTopic, run.ID, event)
}

var _ BoardingUseCase = (*BoardingService)(nil)
