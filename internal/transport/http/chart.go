package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"predictive-guardian/internal/synth"
)

const (
	chartWidth  = 960
	chartHeight = 420
)

// renderPredictive draws vibration, temperature and the failure threshold over time as a PNG.
func renderPredictive(samples []synth.PredictiveSample) ([]byte, error) {
	times := make([]time.Time, 0, len(samples))
	vibration := make([]float64, 0, len(samples))
	temperature := make([]float64, 0, len(samples))
	threshold := make([]float64, 0, len(samples))
	for _, s := range samples {
		day, err := time.Parse("2006-01-02", s.Day)
		if err != nil {
			return nil, fmt.Errorf("parse sample day %q: %w", s.Day, err)
		}
		times = append(times, day)
		vibration = append(vibration, s.Vibration)
		temperature = append(temperature, s.Temperature)
		threshold = append(threshold, s.Threshold)
	}
	// go-chart needs two x values to build a range.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 0, 1))
		vibration = append(vibration, vibration[0])
		temperature = append(temperature, temperature[0])
		threshold = append(threshold, threshold[0])
	}

	ch := chart.Chart{
		Title:      "Equipment degradation",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2")},
		YAxis:      chart.YAxis{Name: "mm/s · °C"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Vibration",
				XValues: times,
				YValues: vibration,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Temperature",
				XValues: times,
				YValues: temperature,
				Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Failure threshold",
				XValues: times,
				YValues: threshold,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render predictive chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) predictiveChart(w http.ResponseWriter, r *http.Request) {
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
	img, err := renderPredictive(samples)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
