package synth

import (
	"fmt"
	"math"
)

const (
	FailureThreshold = 50.0

	vibrationStart    = 10.0
	vibrationGrowth   = 1.05
	temperatureStart  = 45.0
	temperatureGrowth = 1.02
	temperatureCap    = 100.0

	vibrationFloor   = 5.0
	temperatureFloor = 40.0
	vibrationNoise   = 2.5
	temperatureNoise = 1.5

	forecastWindow = 7
)

type PredictiveSample struct {
	Date          string   `json:"date"`
	Day           string   `json:"day"`
	Vibration     float64  `json:"vibration"`
	Temperature   float64  `json:"temperature"`
	Predicted     *float64 `json:"predicted,omitempty"`
	PredictedTemp *float64 `json:"predictedTemp,omitempty"`
	Threshold     float64  `json:"threshold"`
}

// VibrationTrend and TemperatureTrend are the degradation curves shared with the live feed.
func VibrationTrend() *Trend { return NewTrend(vibrationStart, vibrationGrowth, FailureThreshold) }
func TemperatureTrend() *Trend { return NewTrend(temperatureStart, temperatureGrowth, temperatureCap) }

// Predictive returns one sample per day ending today. The final seven samples also carry the
// noiseless trend as the forecast.
func (g *Generator) Predictive(days int) ([]PredictiveSample, error) {
	if days < 1 || days > MaxDays {
		return nil, fmt.Errorf("days %d not in [1,%d]: %w", days, MaxDays, ErrInvalidCount)
	}

	vib := VibrationTrend()
	temp := TemperatureTrend()
	now := g.now()

	out := make([]PredictiveSample, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - i - 1))

		vt := vib.Step()
		tt := temp.Step()

		v, t := Observe(g.src, vt, tt)

		s := PredictiveSample{
			Date:        date.Format("Jan 2"),
			Day:         date.Format("2006-01-02"),
			Vibration:   v,
			Temperature: t,
			Threshold:   FailureThreshold,
		}
		if i > days-forecastWindow-1 {
			pv, pt := round(vt, 2), round(tt, 2)
			s.Predicted = &pv
			s.PredictedTemp = &pt
		}
		out = append(out, s)
	}
	return out, nil
}

// Observe turns trend values into measured ones: uniform noise, a floor, two decimals.
func Observe(src Source, vibTrend, tempTrend float64) (vibration, temperature float64) {
	vibration = round(math.Max(vibrationFloor, vibTrend+uniform(src, -vibrationNoise, vibrationNoise)), 2)
	temperature = round(math.Max(temperatureFloor, tempTrend+uniform(src, -temperatureNoise, temperatureNoise)), 2)
	return vibration, temperature
}
