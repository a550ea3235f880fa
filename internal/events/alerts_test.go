package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/logging"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func testAlert() *domain.Alert {
	return &domain.Alert{
		ID:             "a-1",
		EquipmentID:    "equip3",
		EquipmentName:  "Cooling System #C4",
		Type:           domain.AlertTemperatureHigh,
		Severity:       domain.SeverityCritical,
		TriggeredValue: 82,
		TriggeredAt:    time.Date(2025, 4, 22, 10, 42, 0, 0, time.UTC),
	}
}

func TestKafkaAlertSinkKeysByEquipment(t *testing.T) {
	w := &recordingWriter{}
	sink := &KafkaAlertSink{writer: w, log: logging.Discard()}

	if err := sink.PublishAlert(context.Background(), testAlert()); err != nil {
		t.Fatal(err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "equip3" {
		t.Fatalf("unexpected key %q", w.msgs[0].Key)
	}
	var got domain.Alert
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != domain.AlertTemperatureHigh || got.TriggeredValue != 82 {
		t.Fatalf("unexpected payload %+v", got)
	}

	if err := sink.Close(); err != nil || !w.closed {
		t.Fatal("writer not closed")
	}
}

func TestKafkaAlertSinkWrapsWriteErrors(t *testing.T) {
	boom := errors.New("broker unavailable")
	sink := &KafkaAlertSink{writer: &recordingWriter{err: boom}, log: logging.Discard()}

	if err := sink.PublishAlert(context.Background(), testAlert()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

type blockingWriter struct{}

func (blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingWriter) Close() error { return nil }

func TestKafkaAlertSinkBoundsSlowBroker(t *testing.T) {
	sink := &KafkaAlertSink{writer: blockingWriter{}, timeout: 20 * time.Millisecond, log: logging.Discard()}

	start := time.Now()
	err := sink.PublishAlert(context.Background(), testAlert())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("publish blocked for %s", elapsed)
	}
}
