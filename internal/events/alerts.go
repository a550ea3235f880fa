// Package events streams raised alerts to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"predictive-guardian/internal/domain"
)

type AlertSink interface {
	PublishAlert(ctx context.Context, a *domain.Alert) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout bounds a single PublishAlert, retries included.
const publishTimeout = 2 * time.Second

type KafkaAlertSink struct {
	writer  messageWriter
	timeout time.Duration
	log     *slog.Logger
}

func NewKafkaAlertSink(brokers []string, topic string, log *slog.Logger) *KafkaAlertSink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		MaxAttempts:  2,
		WriteTimeout: publishTimeout,
	}
	return &KafkaAlertSink{
		writer:  w,
		timeout: publishTimeout,
		log:     log.With(slog.String("component", "kafka-alerts"), slog.String("topic", topic)),
	}
}

// PublishAlert keys the message by equipment id so one item's alerts stay ordered.
func (s *KafkaAlertSink) PublishAlert(ctx context.Context, a *domain.Alert) error {
	value, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert %s: %w", a.ID, err)
	}
	msg := kafka.Message{
		Key:   []byte(a.EquipmentID),
		Value: value,
		Time:  a.TriggeredAt,
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write alert %s: %w", a.ID, err)
	}
	s.log.Debug("alert published", "alert_id", a.ID, "type", a.Type)
	return nil
}

func (s *KafkaAlertSink) Close() error {
	return s.writer.Close()
}

// NopAlertSink discards alerts when no brokers are configured.
type NopAlertSink struct{}

func (NopAlertSink) PublishAlert(context.Context, *domain.Alert) error { return nil }
func (NopAlertSink) Close() error                                      { return nil }
