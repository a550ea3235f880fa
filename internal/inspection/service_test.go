package inspection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/logging"
	"predictive-guardian/internal/synth"
)

type stubScanner struct {
	finding synth.InspectionFinding
	release chan struct{}
}

func (s *stubScanner) Inspect(ctx context.Context) (synth.InspectionFinding, error) {
	select {
	case <-s.release:
		return s.finding, nil
	case <-ctx.Done():
		return synth.InspectionFinding{}, ctx.Err()
	}
}

type recordingArchive struct {
	mu    sync.Mutex
	saved []domain.Inspection
}

func (a *recordingArchive) SaveInspection(_ context.Context, insp *domain.Inspection) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = append(a.saved, *insp)
	return nil
}

func waitFor(t *testing.T, svc *Service, id string, status domain.InspectionStatus) *domain.Inspection {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		insp, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if insp.Status == status {
			return insp
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("inspection %s never reached %s", id, status)
	return nil
}

func TestStartThenComplete(t *testing.T) {
	finding := synth.Findings()[1]
	scanner := &stubScanner{finding: finding, release: make(chan struct{})}
	archive := &recordingArchive{}
	svc := NewService(scanner, NewMemoryCache(), archive, time.Minute, logging.Discard())
	defer svc.Shutdown()

	insp, err := svc.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if insp.ID == "" || insp.Status != domain.InspectionPending {
		t.Fatalf("unexpected pending inspection %+v", insp)
	}

	got, err := svc.Get(context.Background(), insp.ID)
	if err != nil || got.Status != domain.InspectionPending {
		t.Fatalf("expected pending record, got %+v %v", got, err)
	}

	close(scanner.release)
	done := waitFor(t, svc, insp.ID, domain.InspectionComplete)
	if done.Finding == nil || done.Finding.Component != finding.Component || done.CompletedAt == nil {
		t.Fatalf("unexpected completed inspection %+v", done)
	}

	svc.Shutdown()
	if len(archive.saved) != 1 || archive.saved[0].Status != domain.InspectionComplete {
		t.Fatalf("expected archived result, got %+v", archive.saved)
	}
}

func TestShutdownFailsRunningScans(t *testing.T) {
	scanner := &stubScanner{release: make(chan struct{})}
	cache := NewMemoryCache()
	svc := NewService(scanner, cache, nil, time.Minute, logging.Discard())

	insp, err := svc.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	svc.Shutdown()

	got, err := svc.Get(context.Background(), insp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.InspectionFailed || got.Error == "" {
		t.Fatalf("expected failed inspection, got %+v", got)
	}
}

func TestGetUnknown(t *testing.T) {
	svc := NewService(&stubScanner{}, NewMemoryCache(), nil, time.Minute, logging.Discard())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.SaveInspection(context.Background(), &domain.Inspection{ID: "i1"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := c.GetInspection(context.Background(), "i1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}
