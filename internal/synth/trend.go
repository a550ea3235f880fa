package synth

import "math"

// Trend grows multiplicatively every step until it reaches Ceiling.
type Trend struct {
	Start   float64
	Growth  float64
	Ceiling float64

	value float64
}

func NewTrend(start, growth, ceiling float64) *Trend {
	return &Trend{Start: start, Growth: growth, Ceiling: ceiling, value: start}
}

func (t *Trend) Step() float64 {
	t.value = math.Min(t.Ceiling, t.value*t.Growth)
	return t.value
}

func (t *Trend) Value() float64 { return t.value }

func (t *Trend) AtCeiling() bool { return t.value >= t.Ceiling }

func (t *Trend) Reset() { t.value = t.Start }

// Set moves the trend to v, clamped to [Start, Ceiling].
func (t *Trend) Set(v float64) {
	t.value = math.Max(t.Start, math.Min(t.Ceiling, v))
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
