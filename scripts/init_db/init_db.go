package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"predictive-guardian/internal/config"
	"predictive-guardian/internal/domain"
)

var tables = []string{"equipment_readings", "maintenance_alerts", "inspections"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()

	fmt.Println("Connecting to TimescaleDB...")
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Connection failed: %v\n\nMake sure TimescaleDB is running:\n  docker-compose up -d timescaledb", err)
	}
	defer conn.Close(ctx)
	fmt.Println("✓ Connected")

	createExtensions(ctx, conn)
	createReadings(ctx, conn)
	createAlerts(ctx, conn)
	createInspections(ctx, conn)
	createIndexes(ctx, conn)
	verify(ctx, conn)

	fmt.Println("\n✅ Database initialised successfully")
	fmt.Println("   Run next: go run ./scripts/seed_redis")
}

func section(title string) {
	fmt.Printf("\n── %s %s\n", title, strings.Repeat("─", max(0, 44-len(title))))
}

func createExtensions(ctx context.Context, conn *pgx.Conn) {
	section("Extensions")
	execOrFatal(ctx, conn,
		"CREATE EXTENSION IF NOT EXISTS timescaledb CASCADE;",
		"timescaledb extension",
	)
}

func createReadings(ctx context.Context, conn *pgx.Conn) {
	section("equipment_readings table")

	// Columns follow store.readingColumns.
	execOrFatal(ctx, conn, `
		CREATE TABLE IF NOT EXISTS equipment_readings (
			timestamp       TIMESTAMPTZ      NOT NULL,
			equipment_id    TEXT             NOT NULL,
			equipment_name  TEXT             NOT NULL,
			vibration_mms   DOUBLE PRECISION NOT NULL,
			temperature_c   DOUBLE PRECISION NOT NULL,
			health          DOUBLE PRECISION NOT NULL,
			status          TEXT             NOT NULL,
			threshold       DOUBLE PRECISION NOT NULL
		);
	`, "equipment_readings table created")

	execOrFatal(ctx, conn, `
		SELECT create_hypertable(
			'equipment_readings',
			'timestamp',
			chunk_time_interval => INTERVAL '1 day',
			if_not_exists => TRUE
		);
	`, "equipment_readings converted to hypertable")
}

func createAlerts(ctx context.Context, conn *pgx.Conn) {
	section("maintenance_alerts table")

	types := make([]string, 0, len(domain.DefaultAlertRules))
	for _, rule := range domain.DefaultAlertRules {
		types = append(types, fmt.Sprintf("'%s'", rule.Type))
	}

	execOrFatal(ctx, conn, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS maintenance_alerts (
			id               TEXT             PRIMARY KEY,
			equipment_id     TEXT             NOT NULL,
			equipment_name   TEXT             NOT NULL,
			alert_type       TEXT             NOT NULL,
			severity         TEXT             NOT NULL,
			triggered_value  DOUBLE PRECISION,
			created_at       TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
			acknowledged_at  TIMESTAMPTZ,
			acknowledged_by  TEXT,

			CONSTRAINT chk_alert_type CHECK (alert_type IN (%s)),
			CONSTRAINT chk_severity CHECK (severity IN ('%s', '%s', '%s'))
		);
	`, strings.Join(types, ", "), domain.SeverityInfo, domain.SeverityWarning, domain.SeverityCritical),
		"maintenance_alerts table created")
}

func createInspections(ctx context.Context, conn *pgx.Conn) {
	section("inspections table")

	execOrFatal(ctx, conn, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS inspections (
			id            TEXT             PRIMARY KEY,
			status        TEXT             NOT NULL,
			component     TEXT,
			location      TEXT,
			issue         TEXT,
			solution      TEXT,
			severity      TEXT,
			cost          DOUBLE PRECISION,
			error         TEXT             NOT NULL DEFAULT '',
			started_at    TIMESTAMPTZ      NOT NULL,
			completed_at  TIMESTAMPTZ,

			CONSTRAINT chk_status CHECK (status IN ('%s', '%s', '%s'))
		);
	`, domain.InspectionPending, domain.InspectionComplete, domain.InspectionFailed),
		"inspections table created")
}

func createIndexes(ctx context.Context, conn *pgx.Conn) {
	section("Indexes")

	indexes := []struct {
		name string
		sql  string
		why  string
	}{
		{
			name: "idx_readings_equipment_time",
			sql: `CREATE INDEX IF NOT EXISTS idx_readings_equipment_time
				  ON equipment_readings (equipment_id, timestamp DESC);`,
			why: "history for one equipment item",
		},
		{
			name: "idx_alerts_created",
			sql: `CREATE INDEX IF NOT EXISTS idx_alerts_created
				  ON maintenance_alerts (created_at DESC);`,
			why: "recent alerts feed",
		},
		{
			name: "idx_alerts_equipment",
			sql: `CREATE INDEX IF NOT EXISTS idx_alerts_equipment
				  ON maintenance_alerts (equipment_id, created_at DESC);`,
			why: "alerts for one equipment item",
		},
		{
			name: "idx_alerts_unacknowledged",
			sql: `CREATE INDEX IF NOT EXISTS idx_alerts_unacknowledged
				  ON maintenance_alerts (created_at DESC)
				  WHERE acknowledged_at IS NULL;`,
			why: "open alerts only (partial index)",
		},
		{
			name: "idx_inspections_started",
			sql: `CREATE INDEX IF NOT EXISTS idx_inspections_started
				  ON inspections (started_at DESC);`,
			why: "inspection history",
		},
	}

	for _, idx := range indexes {
		execOrFatal(ctx, conn, idx.sql, fmt.Sprintf("%-32s ← %s", idx.name, idx.why))
	}
}

func verify(ctx context.Context, conn *pgx.Conn) {
	section("Verification")

	for _, table := range tables {
		var exists bool
		err := conn.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_name = $1
			)
		`, table).Scan(&exists)
		if err != nil || !exists {
			log.Fatalf("Table %s was not created: %v", table, err)
		}
		fmt.Printf("  ✓ table: %s\n", table)
	}

	var hypertable string
	err := conn.QueryRow(ctx, `
		SELECT hypertable_name
		FROM timescaledb_information.hypertables
		WHERE hypertable_name = 'equipment_readings'
	`).Scan(&hypertable)
	if err != nil {
		log.Fatalf("equipment_readings is not a hypertable: %v", err)
	}
	fmt.Printf("  ✓ hypertable: %s\n", hypertable)

	var indexCount int
	err = conn.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE tablename = ANY($1)
		AND indexname LIKE 'idx_%'
	`, tables).Scan(&indexCount)
	if err != nil {
		log.Fatalf("Index check failed: %v", err)
	}
	fmt.Printf("  ✓ indexes: %d\n", indexCount)
}

func execOrFatal(ctx context.Context, conn *pgx.Conn, sql, label string) {
	if _, err := conn.Exec(ctx, sql); err != nil {
		log.Fatalf("FAILED: %s\nError: %v\nSQL: %s", label, err, sql)
	}
	fmt.Printf("  ✓ %s\n", label)
}
