package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/inspection"
	"predictive-guardian/internal/logging"
	"predictive-guardian/internal/store"
	"predictive-guardian/internal/synth"
)

type stubAlerts struct {
	limit int
	err   error
}

func (s *stubAlerts) RecentAlerts(_ context.Context, limit int) ([]domain.Alert, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Alert{{ID: "a-1", EquipmentID: "equip3", Type: domain.AlertTemperatureHigh}}, nil
}

type stubInspections struct{}

func (stubInspections) Start(context.Context) (*domain.Inspection, error) {
	return &domain.Inspection{ID: "insp-1", Status: domain.InspectionPending}, nil
}

func (stubInspections) Get(_ context.Context, id string) (*domain.Inspection, error) {
	if id != "insp-1" {
		return nil, fmt.Errorf("inspection %s: %w", id, inspection.ErrNotFound)
	}
	return &domain.Inspection{ID: id, Status: domain.InspectionComplete}, nil
}

type stubLive struct {
	ch chan store.Message
}

func (s *stubLive) Messages(context.Context, ...string) (<-chan store.Message, error) {
	return s.ch, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubKeys struct{ key string }

func (k stubKeys) Validate(_ context.Context, apiKey string) bool { return apiKey == k.key }

func newTestServer(t *testing.T, mutate func(*Deps)) *Server {
	t.Helper()
	d := Deps{
		Generator:   synth.New(synth.NewSource(7), nil, synth.WithScanDelay(0)),
		Alerts:      &stubAlerts{},
		Inspections: stubInspections{},
		Checks:      map[string]Pinger{"redis": stubPinger{}},
		Log:         logging.Discard(),
	}
	if mutate != nil {
		mutate(&d)
	}
	return NewServer(d)
}

func do(t *testing.T, h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload["error"]
}

func TestPredictive(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	rr := do(t, h, http.MethodGet, "/api/v1/predictive", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var samples []synth.PredictiveSample
	if err := json.NewDecoder(rr.Body).Decode(&samples); err != nil {
		t.Fatal(err)
	}
	if len(samples) != defaultDays {
		t.Fatalf("expected %d samples, got %d", defaultDays, len(samples))
	}

	for _, target := range []string{"/api/v1/predictive?days=0", "/api/v1/predictive?days=366", "/api/v1/predictive?days=ten"} {
		rr := do(t, h, http.MethodGet, target, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rr.Code)
		}
		if msg := decodeError(t, rr); msg == "" {
			t.Fatalf("%s: expected error message", target)
		}
	}
}

func TestUnknownKeysAre404(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	for _, target := range []string{
		"/api/v1/drivers/driver-9/impact",
		"/api/v1/sensors/lambda/comparison",
		"/api/v1/systems/hvac/timeline",
		"/api/v1/components/turbo/impact",
		"/api/v1/environment/climate?climate=lunar",
		"/api/v1/environment/terrain?terrain=swamp",
	} {
		rr := do(t, h, http.MethodGet, target, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rr.Code)
		}
		if msg := decodeError(t, rr); !strings.Contains(msg, "unknown key") {
			t.Fatalf("%s: unexpected error %q", target, msg)
		}
	}
}

func TestKeyedRoutes(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	rr := do(t, h, http.MethodGet, "/api/v1/drivers/driver-2/impact", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var impact synth.DriverImpact
	if err := json.NewDecoder(rr.Body).Decode(&impact); err != nil {
		t.Fatal(err)
	}
	if impact.Driver.Name != "Sarah Johnson" || len(impact.TimeSeriesData) != 12 {
		t.Fatalf("unexpected impact %+v", impact.Driver)
	}

	for _, target := range []string{
		"/api/v1/drivers",
		"/api/v1/sensors",
		"/api/v1/sensors/coolant-temp/comparison",
		"/api/v1/systems/brakes/factors",
		"/api/v1/systems/engine/improvements",
		"/api/v1/components/oxygen-sensor/impact",
		"/api/v1/model",
		"/api/v1/model/predictions?n=5",
		"/api/v1/equipment",
		"/api/v1/alerts",
		"/api/v1/maintenance/alerts",
		"/api/v1/maintenance/timeline",
		"/api/v1/vehicle/health",
	} {
		if rr := do(t, h, http.MethodGet, target, nil); rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rr.Code)
		}
	}
}

func TestStats(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	rr := do(t, h, http.MethodGet, "/api/v1/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stats domain.Stats
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalEquipment != len(domain.Equipments) || stats.ActiveAlerts != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestEnvironment(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	rr := do(t, h, http.MethodGet, "/api/v1/environment/climate?climate=arid&temperature=40", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var climate synth.ClimateImpact
	if err := json.NewDecoder(rr.Body).Decode(&climate); err != nil {
		t.Fatal(err)
	}
	if !climate.EngineCaution || climate.OperatingTempC != 100 {
		t.Fatalf("unexpected climate impact %+v", climate)
	}

	for _, target := range []string{
		"/api/v1/environment/climate?temperature=75",
		"/api/v1/environment/climate?humidity=wet",
		"/api/v1/environment/terrain?terrain=mountain&elevation=4000",
		"/api/v1/environment/climate?temperature=NaN",
		"/api/v1/environment/climate?precipitation=-Inf",
		"/api/v1/environment/terrain?terrain=mountain&elevation=NaN",
	} {
		rr := do(t, h, http.MethodGet, target, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rr.Code)
		}
		if msg := decodeError(t, rr); msg == "" {
			t.Fatalf("%s: expected error message", target)
		}
	}

	rr = do(t, h, http.MethodGet, "/api/v1/environment/terrain?terrain=mountain&elevation=2000", nil)
	var terrain synth.TerrainImpact
	if err := json.NewDecoder(rr.Body).Decode(&terrain); err != nil {
		t.Fatal(err)
	}
	if terrain.BrakeInspectionDaysEarlier != 30 || terrain.PowertrainStress != synth.StressModerate {
		t.Fatalf("unexpected terrain impact %+v", terrain)
	}
}

func TestAuth(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), stubKeys{key: "secret"})

	rr := do(t, h, http.MethodGet, "/api/v1/equipment", nil)
	if rr.Code != http.StatusUnauthorized || !strings.Contains(decodeError(t, rr), "missing") {
		t.Fatalf("expected 401 for missing key, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/equipment", map[string]string{"X-API-Key": "nope"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad key, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/equipment", map[string]string{"X-API-Key": "secret"}); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/health", nil); rr.Code != http.StatusOK {
		t.Fatalf("health must stay open, got %d", rr.Code)
	}
}

func TestRecentAlerts(t *testing.T) {
	alerts := &stubAlerts{}
	h := NewRouter(newTestServer(t, func(d *Deps) { d.Alerts = alerts }), nil)

	rr := do(t, h, http.MethodGet, "/api/v1/alerts/recent?limit=5", nil)
	if rr.Code != http.StatusOK || alerts.limit != 5 {
		t.Fatalf("expected 200 with limit 5, got %d limit %d", rr.Code, alerts.limit)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/alerts/recent?limit=500", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	alerts.err = errors.New("pool closed")
	rr = do(t, h, http.MethodGet, "/api/v1/alerts/recent", nil)
	if rr.Code != http.StatusInternalServerError || decodeError(t, rr) != "internal error" {
		t.Fatalf("expected opaque 500, got %d", rr.Code)
	}

	h = NewRouter(newTestServer(t, func(d *Deps) { d.Alerts = nil }), nil)
	if rr := do(t, h, http.MethodGet, "/api/v1/alerts/recent", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestInspections(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	rr := do(t, h, http.MethodPost, "/api/v1/inspections", nil)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/api/v1/inspections/insp-1" {
		t.Fatalf("unexpected location %q", loc)
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/inspections/insp-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/inspections/other", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestPredictiveChart(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)

	for _, target := range []string{"/api/v1/predictive/chart.png?days=14", "/api/v1/predictive/chart.png?days=1"} {
		rr := do(t, h, http.MethodGet, target, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
			t.Fatalf("%s: unexpected content type %q", target, ct)
		}
		if !bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")) {
			t.Fatalf("%s: body is not a PNG", target)
		}
	}
}

func TestHealth(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)
	if rr := do(t, h, http.MethodGet, "/health", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	h = NewRouter(newTestServer(t, func(d *Deps) {
		d.Checks = map[string]Pinger{"timescale": stubPinger{err: errors.New("connection refused")}}
	}), nil)
	rr := do(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "degraded" || body.Checks["timescale"] != "connection refused" {
		t.Fatalf("unexpected health body %+v", body)
	}
}

func TestTelemetryStream(t *testing.T) {
	live := &stubLive{ch: make(chan store.Message, 1)}
	live.ch <- store.Message{Channel: store.TelemetryChannel, Payload: []byte(`{"equipment_id":"equip1","health":91.5}`)}

	srv := httptest.NewServer(NewRouter(newTestServer(t, func(d *Deps) { d.Live = live }), nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/telemetry", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env struct {
		Channel string `json:"channel"`
		Data    struct {
			EquipmentID string  `json:"equipment_id"`
			Health      float64 `json:"health"`
		} `json:"data"`
	}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatal(err)
	}
	if env.Channel != store.TelemetryChannel || env.Data.EquipmentID != "equip1" || env.Data.Health != 91.5 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestTelemetryStreamUnavailable(t *testing.T) {
	h := NewRouter(newTestServer(t, nil), nil)
	if rr := do(t, h, http.MethodGet, "/ws/telemetry", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, map[string]float64{"health": math.NaN()})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); msg != "internal error" {
		t.Fatalf("unexpected error %q", msg)
	}
}
