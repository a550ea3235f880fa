package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"predictive-guardian/internal/config"
	"predictive-guardian/internal/domain"
)

type TimescaleStore struct {
	pool *pgxpool.Pool
}

func NewTimescaleStore(ctx context.Context, cfg *config.Config) (*TimescaleStore, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &TimescaleStore{pool: pool}, nil
}

func (s *TimescaleStore) Close() {
	s.pool.Close()
}

func (s *TimescaleStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var readingColumns = []string{
	"timestamp",
	"equipment_id",
	"equipment_name",
	"vibration_mms",
	"temperature_c",
	"health",
	"status",
	"threshold",
}

func (s *TimescaleStore) BatchInsert(ctx context.Context, readings []*domain.EquipmentReading) error {
	if len(readings) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(readings))
	for i, r := range readings {
		rows[i] = []interface{}{
			r.Timestamp,
			r.EquipmentID,
			r.Name,
			r.VibrationMMS,
			r.TemperatureC,
			r.Health,
			string(r.Status),
			r.Threshold,
		}
	}

	_, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{"equipment_readings"},
		readingColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("CopyFrom failed for batch of %d: %w", len(readings), err)
	}

	return nil
}

func (s *TimescaleStore) InsertAlert(ctx context.Context, a *domain.Alert) error {
	query := `
		INSERT INTO maintenance_alerts
			(id, equipment_id, equipment_name, alert_type, severity, triggered_value, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`
	_, err := s.pool.Exec(
		ctx,
		query,
		a.ID,
		a.EquipmentID,
		a.EquipmentName,
		string(a.Type),
		string(a.Severity),
		a.TriggeredValue,
		a.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert %s: %w", a.ID, err)
	}
	return nil
}

// RecentAlerts returns the newest stored alerts first.
func (s *TimescaleStore) RecentAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, equipment_id, equipment_name, alert_type, severity, triggered_value, created_at
		FROM maintenance_alerts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0, limit)
	for rows.Next() {
		var a domain.Alert
		var alertType, severity string
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.EquipmentName, &alertType, &severity, &a.TriggeredValue, &a.TriggeredAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Type = domain.AlertType(alertType)
		a.Severity = domain.AlertSeverity(severity)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *TimescaleStore) SaveInspection(ctx context.Context, insp *domain.Inspection) error {
	var component, location, issue, solution, severity *string
	var cost *float64
	if f := insp.Finding; f != nil {
		sev := string(f.Severity)
		component, location, issue, solution, severity, cost = &f.Component, &f.Location, &f.Issue, &f.Solution, &sev, &f.Cost
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO inspections
			(id, status, component, location, issue, solution, severity, cost, error, started_at, completed_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			component = EXCLUDED.component,
			location = EXCLUDED.location,
			issue = EXCLUDED.issue,
			solution = EXCLUDED.solution,
			severity = EXCLUDED.severity,
			cost = EXCLUDED.cost,
			error = EXCLUDED.error,
			completed_at = EXCLUDED.completed_at
	`,
		insp.ID,
		string(insp.Status),
		component,
		location,
		issue,
		solution,
		severity,
		cost,
		insp.Error,
		insp.StartedAt,
		insp.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save inspection %s: %w", insp.ID, err)
	}
	return nil
}
