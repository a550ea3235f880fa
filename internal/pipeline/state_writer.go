package pipeline

import (
	"context"
	"log/slog"
	"time"

	"predictive-guardian/internal/domain"
)

type StateStore interface {
	PipelineStateUpdate(ctx context.Context, r *domain.EquipmentReading) error
}

const stateBatchSize = 100

type StateWriter struct {
	ch    <-chan *domain.EquipmentReading
	redis StateStore
	log   *slog.Logger
}

func NewStateWriter(ch <-chan *domain.EquipmentReading, redis StateStore, log *slog.Logger) *StateWriter {
	return &StateWriter{ch: ch, redis: redis, log: log.With(slog.String("component", "state-writer"))}
}

func (w *StateWriter) Run(ctx context.Context) {
	batch := make([]*domain.EquipmentReading, 0, stateBatchSize)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case r, ok := <-w.ch:
			if !ok {
				w.flushBatch(context.Background(), batch)
				return
			}
			batch = append(batch, r)
			if len(batch) >= stateBatchSize {
				w.flushBatch(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flushBatch(ctx, batch)
				batch = batch[:0]
			}

		case <-ctx.Done():
			w.flushBatch(context.Background(), batch)
			return
		}
	}
}

func (w *StateWriter) flushBatch(ctx context.Context, batch []*domain.EquipmentReading) {
	for _, r := range batch {
		if err := w.redis.PipelineStateUpdate(ctx, r); err != nil {
			w.log.Warn("state update failed", "equipment_id", r.EquipmentID, "err", err)
		}
	}
}
