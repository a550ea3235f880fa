package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/events"
	"predictive-guardian/internal/metrics"
)

type AlertWriter interface {
	InsertAlert(ctx context.Context, a *domain.Alert) error
}

// AlertCache deduplicates alerts and fans them out to live dashboards.
type AlertCache interface {
	CheckAlertDedup(ctx context.Context, equipmentID string, alertType domain.AlertType) (bool, error)
	SetAlertDedup(ctx context.Context, equipmentID string, alertType domain.AlertType) error
	PublishAlert(ctx context.Context, payload []byte) error
}

type AlertEvaluator struct {
	ch    <-chan *domain.EquipmentReading
	db    AlertWriter
	cache AlertCache
	sink  events.AlertSink
	rules []domain.AlertRule
	log   *slog.Logger
	now   func() time.Time
}

func NewAlertEvaluator(
	ch <-chan *domain.EquipmentReading,
	db AlertWriter,
	cache AlertCache,
	sink events.AlertSink,
	log *slog.Logger,
) *AlertEvaluator {
	if sink == nil {
		sink = events.NopAlertSink{}
	}
	return &AlertEvaluator{
		ch:    ch,
		db:    db,
		cache: cache,
		sink:  sink,
		rules: domain.DefaultAlertRules,
		log:   log.With(slog.String("component", "alert-evaluator")),
		now:   time.Now,
	}
}

func (e *AlertEvaluator) Run(ctx context.Context) {
	for {
		select {
		case r, ok := <-e.ch:
			if !ok {
				return
			}
			e.evaluate(ctx, r)

		case <-ctx.Done():
			return
		}
	}
}

func (e *AlertEvaluator) evaluate(ctx context.Context, r *domain.EquipmentReading) {
	for _, rule := range e.rules {
		if !rule.Evaluator(r) {
			continue
		}

		isDuplicate, err := e.cache.CheckAlertDedup(ctx, r.EquipmentID, rule.Type)
		if err != nil {
			e.log.Warn("alert dedup check failed", "equipment_id", r.EquipmentID, "type", rule.Type, "err", err)
			continue
		}
		if isDuplicate {
			continue
		}

		alert := &domain.Alert{
			ID:             uuid.NewString(),
			EquipmentID:    r.EquipmentID,
			EquipmentName:  r.Name,
			Type:           rule.Type,
			Severity:       rule.Severity,
			TriggeredValue: rule.Value(r),
			TriggeredAt:    e.now().UTC(),
		}

		if err := e.db.InsertAlert(ctx, alert); err != nil {
			e.log.Error("alert insert failed", "equipment_id", r.EquipmentID, "type", rule.Type, "err", err)
			continue
		}
		metrics.AlertsRaised.WithLabelValues(string(rule.Type)).Inc()

		if err := e.cache.SetAlertDedup(ctx, r.EquipmentID, rule.Type); err != nil {
			e.log.Warn("alert dedup set failed", "equipment_id", r.EquipmentID, "err", err)
		}

		payload, err := json.Marshal(alert)
		if err != nil {
			e.log.Error("alert marshal failed", "alert_id", alert.ID, "err", err)
			continue
		}
		if err := e.cache.PublishAlert(ctx, payload); err != nil {
			e.log.Warn("alert publish failed", "alert_id", alert.ID, "err", err)
		}
		if err := e.sink.PublishAlert(ctx, alert); err != nil {
			e.log.Warn("alert stream write failed", "alert_id", alert.ID, "err", err)
		}
	}
}
