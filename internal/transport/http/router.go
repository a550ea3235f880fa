package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"predictive-guardian/internal/metrics"
)

// NewRouter mounts the API. A nil validator leaves /api/v1 open.
func NewRouter(s *Server, keys KeyValidator) http.Handler {
	r := mux.NewRouter()

	r.Handle("/health", metrics.WrapHandler("/health", http.HandlerFunc(s.health))).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	// Not wrapped: the status recorder would hide http.Hijacker from the upgrader.
	r.HandleFunc("/ws/telemetry", s.telemetryStream).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	if keys != nil {
		api.Use(NewAuthMiddleware(keys).Wrap)
	}

	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/predictive", s.predictive},
		{http.MethodGet, "/predictive/chart.png", s.predictiveChart},
		{http.MethodGet, "/drivers", s.drivers},
		{http.MethodGet, "/drivers/{id}/impact", s.driverImpact},
		{http.MethodGet, "/sensors", s.sensors},
		{http.MethodGet, "/sensors/{type}/comparison", s.sensorComparison},
		{http.MethodGet, "/systems/{id}/timeline", s.systemTimeline},
		{http.MethodGet, "/systems/{id}/factors", s.systemFactors},
		{http.MethodGet, "/systems/{id}/improvements", s.systemImprovements},
		{http.MethodGet, "/components/{id}/impact", s.componentImpact},
		{http.MethodGet, "/environment/climate", s.climate},
		{http.MethodGet, "/environment/terrain", s.terrain},
		{http.MethodGet, "/model", s.model},
		{http.MethodGet, "/model/predictions", s.modelPredictions},
		{http.MethodGet, "/equipment", s.equipment},
		{http.MethodGet, "/stats", s.stats},
		{http.MethodGet, "/vehicle/health", s.vehicleHealth},
		{http.MethodGet, "/alerts", s.notices},
		{http.MethodGet, "/alerts/recent", s.recentAlerts},
		{http.MethodGet, "/maintenance/alerts", s.maintenanceAlerts},
		{http.MethodGet, "/maintenance/timeline", s.maintenanceTimeline},
		{http.MethodPost, "/inspections", s.startInspection},
		{http.MethodGet, "/inspections/{id}", s.getInspection},
	}
	for _, rt := range routes {
		api.Handle(rt.path, metrics.WrapHandler("/api/v1"+rt.path, rt.handler)).Methods(rt.method)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-API-Key"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h
}
