// Package inspection runs simulated visual scans in the background and tracks their results.
package inspection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/metrics"
	"predictive-guardian/internal/store"
	"predictive-guardian/internal/synth"
)

var ErrNotFound = store.ErrNotFound

type Scanner interface {
	Inspect(ctx context.Context) (synth.InspectionFinding, error)
}

// Cache holds inspections while dashboards poll them.
type Cache interface {
	SaveInspection(ctx context.Context, insp *domain.Inspection, ttl time.Duration) error
	GetInspection(ctx context.Context, id string) (*domain.Inspection, error)
}

// Archive keeps finished inspections for reporting.
type Archive interface {
	SaveInspection(ctx context.Context, insp *domain.Inspection) error
}

const saveTimeout = 5 * time.Second

type Service struct {
	scanner Scanner
	cache   Cache
	archive Archive
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService accepts a nil archive.
func NewService(scanner Scanner, cache Cache, archive Archive, ttl time.Duration, log *slog.Logger) *Service {
	base, cancel := context.WithCancel(context.Background())
	return &Service{
		scanner: scanner,
		cache:   cache,
		archive: archive,
		ttl:     ttl,
		log:     log.With(slog.String("component", "inspection")),
		now:     time.Now,
		base:    base,
		cancel:  cancel,
	}
}

// Start records a pending inspection and scans in the background.
func (s *Service) Start(ctx context.Context) (*domain.Inspection, error) {
	insp := &domain.Inspection{
		ID:        uuid.NewString(),
		Status:    domain.InspectionPending,
		StartedAt: s.now().UTC(),
	}
	if err := s.cache.SaveInspection(ctx, insp, s.ttl); err != nil {
		return nil, fmt.Errorf("store pending inspection: %w", err)
	}

	pending := *insp
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.scan(&pending)
	}()

	return insp, nil
}

func (s *Service) scan(insp *domain.Inspection) {
	finding, err := s.scanner.Inspect(s.base)

	done := s.now().UTC()
	insp.CompletedAt = &done
	if err != nil {
		insp.Status = domain.InspectionFailed
		insp.Error = err.Error()
		metrics.Inspections.WithLabelValues(string(domain.InspectionFailed)).Inc()
		s.log.Warn("inspection failed", "id", insp.ID, "err", err)
	} else {
		insp.Status = domain.InspectionComplete
		insp.Finding = &finding
		metrics.Inspections.WithLabelValues(string(domain.InspectionComplete)).Inc()
		s.log.Info("inspection complete", "id", insp.ID, "component", finding.Component, "severity", finding.Severity)
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.cache.SaveInspection(ctx, insp, s.ttl); err != nil {
		s.log.Error("store inspection result failed", "id", insp.ID, "err", err)
	}
	if s.archive != nil {
		if err := s.archive.SaveInspection(ctx, insp); err != nil {
			s.log.Error("archive inspection failed", "id", insp.ID, "err", err)
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Inspection, error) {
	insp, err := s.cache.GetInspection(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("load inspection %s: %w", id, err)
	}
	return insp, nil
}

// Shutdown cancels running scans and waits for their results to be stored.
func (s *Service) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
