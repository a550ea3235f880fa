package pipeline

import (
	"context"
	"log/slog"
	"time"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/metrics"
)

type ReadingStore interface {
	BatchInsert(ctx context.Context, readings []*domain.EquipmentReading) error
}

type DBWriter struct {
	ch         <-chan *domain.EquipmentReading
	db         ReadingStore
	batchSize  int
	flushMS    int
	retryDelay time.Duration
	log        *slog.Logger
}

func NewDBWriter(
	ch <-chan *domain.EquipmentReading,
	db ReadingStore,
	batchSize int,
	flushMS int,
	log *slog.Logger,
) *DBWriter {
	return &DBWriter{
		ch:         ch,
		db:         db,
		batchSize:  batchSize,
		flushMS:    flushMS,
		retryDelay: 500 * time.Millisecond,
		log:        log.With(slog.String("component", "db-writer")),
	}
}

func (w *DBWriter) Run(ctx context.Context) {
	batch := make([]*domain.EquipmentReading, 0, w.batchSize)
	ticker := time.NewTicker(time.Duration(w.flushMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case r, ok := <-w.ch:
			if !ok {
				if len(batch) > 0 {
					w.flush(context.Background(), batch)
				}
				return
			}
			batch = append(batch, r)
			if len(batch) >= w.batchSize {
				w.flush(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = batch[:0]
			}

		case <-ctx.Done():
			if len(batch) > 0 {
				w.flush(context.Background(), batch)
			}
			return
		}
	}
}

func (w *DBWriter) flush(ctx context.Context, batch []*domain.EquipmentReading) {
	err := w.db.BatchInsert(ctx, batch)
	if err != nil {
		w.log.Warn("batch insert failed, retrying", "batch", len(batch), "err", err)
		time.Sleep(w.retryDelay)
		err = w.db.BatchInsert(ctx, batch)
		if err != nil {
			w.log.Error("batch insert permanently failed", "batch", len(batch), "err", err)
			metrics.DBWriteFailures.Add(float64(len(batch)))
			return
		}
	}
	metrics.DBWriteSuccess.Add(float64(len(batch)))
}
