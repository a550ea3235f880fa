package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"predictive-guardian/internal/inspection"
	"predictive-guardian/internal/synth"
)

// writeJSON encodes before writing the header so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode response", "status", status, "err", err)
		buf.Reset()
		buf.WriteString(`{"error":"internal error"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, synth.ErrUnknownKey), errors.Is(err, inspection.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, synth.ErrInvalidCount), errors.Is(err, synth.ErrOutOfRange), errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadQuery = errors.New("bad query parameter")

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, errBadQuery)
	}
	return n, nil
}

// floatQuery returns nil when the parameter is absent.
func floatQuery(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number: %w", name, errBadQuery)
	}
	return &v, nil
}
