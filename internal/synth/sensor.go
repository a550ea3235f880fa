package synth

type Phase string

const (
	PhaseBefore Phase = "before"
	PhaseAfter  Phase = "after"
)

type SensorReading struct {
	Hour    int     `json:"hour"`
	Reading float64 `json:"reading"`
	Type    Phase   `json:"type"`
}

type SensorComparison struct {
	SensorInfo SensorSpec      `json:"sensorInfo"`
	Data       []SensorReading `json:"data"`
}

// SensorComparison returns DataPoints readings taken before the sensor was replaced followed
// by DataPoints readings taken after, each within mean ± variability of its phase.
func (g *Generator) SensorComparison(sensorType string) (SensorComparison, error) {
	s, ok := g.profiles.Sensors[sensorType]
	if !ok {
		return SensorComparison{}, unknown("sensor", sensorType)
	}

	before := make([]SensorReading, 0, s.DataPoints)
	after := make([]SensorReading, 0, s.DataPoints)
	for hour := 0; hour < s.DataPoints; hour++ {
		b := s.BeforeMean + uniform(g.src, -1, 1)*s.BeforeVariability
		a := s.AfterMean + uniform(g.src, -1, 1)*s.AfterVariability
		before = append(before, SensorReading{Hour: hour, Reading: round(b, 2), Type: PhaseBefore})
		after = append(after, SensorReading{Hour: hour, Reading: round(a, 2), Type: PhaseAfter})
	}

	return SensorComparison{
		SensorInfo: s,
		Data:       append(before, after...),
	}, nil
}

// Phase filters the readings of one phase, in hour order.
func (c SensorComparison) Phase(p Phase) []SensorReading {
	out := make([]SensorReading, 0, len(c.Data)/2)
	for _, r := range c.Data {
		if r.Type == p {
			out = append(out, r)
		}
	}
	return out
}
