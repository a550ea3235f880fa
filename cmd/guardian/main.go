package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"predictive-guardian/internal/auth"
	"predictive-guardian/internal/config"
	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/events"
	"predictive-guardian/internal/feed"
	"predictive-guardian/internal/inspection"
	"predictive-guardian/internal/logging"
	"predictive-guardian/internal/pipeline"
	"predictive-guardian/internal/store"
	"predictive-guardian/internal/synth"
	transport "predictive-guardian/internal/transport/http"
)

const connectTimeout = 5 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info("no .env file loaded", "err", envErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("configuration rejected", "err", err)
		os.Exit(1)
	}

	profiles, err := synth.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		log.Error("loading profiles failed", "path", cfg.ProfilesPath, "err", err)
		os.Exit(1)
	}
	gen := synth.New(synth.NewSource(cfg.GeneratorSeed), profiles, synth.WithScanDelay(cfg.InspectionDelay))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ts, rs := connectStores(ctx, cfg, log)
	if ts != nil {
		defer ts.Close()
	}
	if rs != nil {
		defer rs.Close()
	}

	var sink events.AlertSink = events.NopAlertSink{}
	if len(cfg.KafkaBrokers) > 0 {
		sink = events.NewKafkaAlertSink(cfg.KafkaBrokers, cfg.KafkaAlertTopic, log)
		log.Info("kafka alert stream enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertTopic)
	}
	defer sink.Close()

	var workers sync.WaitGroup
	if cfg.FeedEnabled && ts != nil && rs != nil {
		startPipeline(ctx, cfg, ts, rs, sink, log, &workers)
	} else if cfg.FeedEnabled {
		log.Warn("live feed disabled: TimescaleDB and Redis are both required")
	}

	deps := transport.Deps{Generator: gen, Log: log, Checks: map[string]transport.Pinger{}}
	var cache inspection.Cache = inspection.NewMemoryCache()
	var archive inspection.Archive
	if ts != nil {
		deps.Alerts = ts
		deps.Checks["timescale"] = ts
		archive = ts
	}
	if rs != nil {
		deps.Live = rs
		deps.Checks["redis"] = rs
		cache = rs
	}
	inspections := inspection.NewService(gen, cache, archive, cfg.InspectionTTL, log)
	deps.Inspections = inspections

	authn := auth.NewAuthenticator(cfg, keyLookup(rs))
	var keys transport.KeyValidator
	if authn.Enabled() {
		keys = authn
	} else {
		log.Warn("no API keys configured, /api/v1 is open")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           transport.NewRouter(transport.NewServer(deps), keys),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", "err", err)
	}
	inspections.Shutdown()
	workers.Wait()
	log.Info("predictive guardian stopped")
}

// connectStores returns nil for a store that cannot be reached; the service then runs degraded.
func connectStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store.TimescaleStore, *store.RedisStore) {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	ts, err := store.NewTimescaleStore(cctx, cfg)
	if err != nil {
		log.Warn("timescaledb unavailable", "host", cfg.DBHost, "err", err)
	}
	rs, err := store.NewRedisStore(cctx, cfg)
	if err != nil {
		log.Warn("redis unavailable", "addr", cfg.RedisAddr, "err", err)
	}
	return ts, rs
}

func keyLookup(rs *store.RedisStore) auth.KeyLookup {
	if rs == nil {
		return nil
	}
	return rs
}

// startPipeline runs the feed into the dispatcher and the configured number of workers per channel.
func startPipeline(
	ctx context.Context,
	cfg *config.Config,
	ts *store.TimescaleStore,
	rs *store.RedisStore,
	sink events.AlertSink,
	log *slog.Logger,
	wg *sync.WaitGroup,
) {
	dispatcher := pipeline.NewDispatcher(cfg.DBChannelSize, cfg.StateChannelSize, cfg.AlertChannelSize)

	run := func(n int, fn func(context.Context)) {
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fn(ctx)
			}()
		}
	}

	run(cfg.DBWriterWorkers, pipeline.NewDBWriter(dispatcher.DBChan, ts, cfg.DBBatchSize, cfg.DBFlushIntervalMS, log).Run)
	run(cfg.StateWriterWorkers, pipeline.NewStateWriter(dispatcher.StateChan, rs, log).Run)
	run(cfg.AlertWorkers, pipeline.NewAlertEvaluator(dispatcher.AlertChan, ts, rs, sink, log).Run)

	f := feed.New(domain.Equipments, synth.NewSource(cfg.FeedSeed), cfg.FeedInterval, log)
	run(1, func(ctx context.Context) { f.Run(ctx, dispatcher) })

	log.Info("pipeline started",
		"db_writers", cfg.DBWriterWorkers,
		"state_writers", cfg.StateWriterWorkers,
		"alert_workers", cfg.AlertWorkers,
	)
}
