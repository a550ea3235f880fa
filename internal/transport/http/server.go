package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/store"
	"predictive-guardian/internal/synth"
)

const (
	defaultDays        = 30
	defaultModelPoints = 30
	defaultAlertLimit  = 20
	maxAlertLimit      = 100
	pingTimeout        = 2 * time.Second
)

type AlertHistory interface {
	RecentAlerts(ctx context.Context, limit int) ([]domain.Alert, error)
}

type Inspections interface {
	Start(ctx context.Context) (*domain.Inspection, error)
	Get(ctx context.Context, id string) (*domain.Inspection, error)
}

// LiveSource relays pub/sub messages for the websocket bridge.
type LiveSource interface {
	Messages(ctx context.Context, channels ...string) (<-chan store.Message, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires the server. Nil optional dependencies make their routes answer 503.
type Deps struct {
	Generator   *synth.Generator
	Alerts      AlertHistory
	Inspections Inspections
	Live        LiveSource
	Checks      map[string]Pinger
	Log         *slog.Logger
}

type Server struct {
	gen         *synth.Generator
	alerts      AlertHistory
	inspections Inspections
	live        LiveSource
	checks      map[string]Pinger
	log         *slog.Logger
	upgrader    websocket.Upgrader
}

func NewServer(d Deps) *Server {
	return &Server{
		gen:         d.Generator,
		alerts:      d.Alerts,
		inspections: d.Inspections,
		live:        d.Live,
		checks:      d.Checks,
		log:         d.Log.With(slog.String("component", "http")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.checks))
	status, code := "ok", http.StatusOK
	for name, p := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		err := p.Ping(ctx)
		cancel()
		if err != nil {
			checks[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

func (s *Server) predictive(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", defaultDays)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	samples, err := s.gen.Predictive(days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (s *Server) drivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gen.Profiles().DriverList())
}

func (s *Server) driverImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.gen.DriverImpact(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) sensors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gen.Profiles().SensorList())
}

func (s *Server) sensorComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.gen.SensorComparison(mux.Vars(r)["type"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) systemTimeline(w http.ResponseWriter, r *http.Request) {
	points, err := s.gen.SystemTimeline(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) systemFactors(w http.ResponseWriter, r *http.Request) {
	factors, err := s.gen.SystemFactors(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, factors)
}

func (s *Server) systemImprovements(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.gen.SystemImprovements(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) componentImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.gen.ComponentImpact(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) climate(w http.ResponseWriter, r *http.Request) {
	in := synth.ClimateInput{Climate: r.URL.Query().Get("climate")}
	var err error
	for name, dst := range map[string]**float64{
		"temperature":   &in.Temperature,
		"humidity":      &in.Humidity,
		"precipitation": &in.Precipitation,
	} {
		if *dst, err = floatQuery(r, name); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	impact, err := s.gen.ClimateImpact(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) terrain(w http.ResponseWriter, r *http.Request) {
	in := synth.TerrainInput{Terrain: r.URL.Query().Get("terrain")}
	if in.Terrain == "" {
		in.Terrain = "flat"
	}
	elevation, err := floatQuery(r, "elevation")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if elevation != nil {
		in.Elevation = *elevation
	}

	impact, err := s.gen.TerrainImpact(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) modelPredictions(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "n", defaultModelPoints)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	preds, err := s.gen.ModelPredictions(n)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preds)
}

func (s *Server) model(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, synth.Model())
}

func (s *Server) equipment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Equipments)
}

func (s *Server) notices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Notices)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.CatalogStats())
}

func (s *Server) vehicleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.VehicleHealth)
}

func (s *Server) maintenanceAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.MaintenancePredictions)
}

func (s *Server) maintenanceTimeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.MaintenanceTimeline)
}

func (s *Server) recentAlerts(w http.ResponseWriter, r *http.Request) {
	if s.alerts == nil {
		writeError(w, http.StatusServiceUnavailable, "alert history not configured")
		return
	}
	limit, err := intQuery(r, "limit", defaultAlertLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if limit < 1 || limit > maxAlertLimit {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	alerts, err := s.alerts.RecentAlerts(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) startInspection(w http.ResponseWriter, r *http.Request) {
	if s.inspections == nil {
		writeError(w, http.StatusServiceUnavailable, "inspections not configured")
		return
	}
	insp, err := s.inspections.Start(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/inspections/"+insp.ID)
	writeJSON(w, http.StatusAccepted, insp)
}

func (s *Server) getInspection(w http.ResponseWriter, r *http.Request) {
	if s.inspections == nil {
		writeError(w, http.StatusServiceUnavailable, "inspections not configured")
		return
	}
	insp, err := s.inspections.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}
