// Package feed simulates live equipment degrading along the predictive trends.
package feed

import (
	"context"
	"log/slog"
	"math"
	"time"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/metrics"
	"predictive-guardian/internal/synth"
)

// DefaultMaintenanceTicks is how long an item sits at the failure threshold before it is serviced.
const DefaultMaintenanceTicks = 5

type Sink interface {
	Dispatch(r *domain.EquipmentReading)
}

type unit struct {
	eq        domain.Equipment
	vib       *synth.Trend
	temp      *synth.Trend
	atCeiling int
}

type Feed struct {
	src              synth.Source
	units            []*unit
	interval         time.Duration
	maintenanceTicks int
	now              func() time.Time
	log              *slog.Logger
}

// New starts every item at the point of its trends that matches its catalog health.
func New(equipment []domain.Equipment, src synth.Source, interval time.Duration, log *slog.Logger) *Feed {
	units := make([]*unit, 0, len(equipment))
	for _, eq := range equipment {
		u := &unit{eq: eq, vib: synth.VibrationTrend(), temp: synth.TemperatureTrend()}
		wear := (100 - clamp(eq.Health)) / 100
		u.vib.Set(u.vib.Start + wear*(u.vib.Ceiling-u.vib.Start))
		u.temp.Set(u.temp.Start + wear*(u.temp.Ceiling-u.temp.Start))
		units = append(units, u)
	}

	return &Feed{
		src:              src,
		units:            units,
		interval:         interval,
		maintenanceTicks: DefaultMaintenanceTicks,
		now:              time.Now,
		log:              log.With(slog.String("component", "feed")),
	}
}

// Run emits one reading per item every interval until ctx ends.
func (f *Feed) Run(ctx context.Context, sink Sink) {
	t := time.NewTicker(f.interval)
	defer t.Stop()

	f.log.Info("feed started", "equipment", len(f.units), "interval", f.interval)
	for {
		select {
		case <-t.C:
			for _, r := range f.Tick() {
				metrics.ReadingsGenerated.Inc()
				sink.Dispatch(r)
			}
		case <-ctx.Done():
			f.log.Info("feed stopped")
			return
		}
	}
}

// Tick advances every item by one step. It is not safe for concurrent use.
func (f *Feed) Tick() []*domain.EquipmentReading {
	ts := f.now().UTC()
	out := make([]*domain.EquipmentReading, 0, len(f.units))

	for _, u := range f.units {
		vt, tt := u.vib.Step(), u.temp.Step()
		if u.vib.AtCeiling() {
			u.atCeiling++
		}

		serviced := false
		if u.atCeiling > f.maintenanceTicks {
			u.vib.Reset()
			u.temp.Reset()
			u.atCeiling = 0
			vt, tt = u.vib.Value(), u.temp.Value()
			serviced = true
			f.log.Debug("equipment serviced", "equipment_id", u.eq.ID)
		}

		vibration, temperature := synth.Observe(f.src, vt, tt)
		health := Health(vt)

		status := statusFor(health)
		if serviced {
			status = domain.StatusMaintenance
		}

		out = append(out, &domain.EquipmentReading{
			Timestamp:    ts,
			EquipmentID:  u.eq.ID,
			Name:         u.eq.Title,
			VibrationMMS: vibration,
			TemperatureC: temperature,
			Health:       health,
			Status:       status,
			Threshold:    synth.FailureThreshold,
		})
	}
	return out
}

// Health maps a vibration trend value onto 0..100, 100 at the trend start and 0 at the threshold.
func Health(vibTrend float64) float64 {
	const start = 10.0
	h := 100 - 100*(vibTrend-start)/(synth.FailureThreshold-start)
	return math.Round(clamp(h)*10) / 10
}

func statusFor(health float64) domain.EquipmentStatus {
	switch {
	case health >= 80:
		return domain.StatusHealthy
	case health >= 50:
		return domain.StatusWarning
	default:
		return domain.StatusCritical
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
