package synth

import "fmt"

const (
	impactWeeks = 12

	baseFuelMPG    = 22.0
	baseEngineWear = 0.05
	baseBrakeWear  = 0.08
	baseTiresWear  = 0.1
)

type DriverImpactSample struct {
	TimePoint      string  `json:"timePoint"`
	FuelEfficiency float64 `json:"fuelEfficiency"`
	EngineWear     float64 `json:"engineWear"`
	BrakeWear      float64 `json:"brakeWear"`
	TiresWear      float64 `json:"tiresWear"`
}

type HabitScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type DriverImpact struct {
	Driver         DriverProfile        `json:"driver"`
	TimeSeriesData []DriverImpactSample `json:"timeSeriesData"`
	DrivingHabits  []HabitScore         `json:"drivingHabits"`
}

// DriverBase holds the per-100-mile wear rates and fuel economy implied by a driving profile.
type DriverBase struct {
	FuelMPG    float64
	EngineWear float64
	BrakeWear  float64
	TiresWear  float64
}

func BaseFor(p DriverProfile) DriverBase {
	b := DriverBase{
		FuelMPG:    baseFuelMPG,
		EngineWear: baseEngineWear,
		BrakeWear:  baseBrakeWear,
		TiresWear:  baseTiresWear,
	}

	switch p.Acceleration {
	case StyleAggressive:
		b.FuelMPG -= 4
		b.EngineWear += 0.03
	case StyleSmooth:
		b.FuelMPG += 2
		b.EngineWear -= 0.01
	}

	switch p.Braking {
	case StyleAggressive:
		b.BrakeWear += 0.04
		b.TiresWear += 0.02
	case StyleGentle:
		b.BrakeWear -= 0.02
		b.TiresWear -= 0.01
	}

	switch p.Speeds {
	case StyleHigh:
		b.FuelMPG -= 3
		b.EngineWear += 0.02
	case StyleModerate:
		b.FuelMPG += 2
	}

	return b
}

// DriverImpact simulates twelve weeks of wear and fuel economy for a driver. One random factor
// in [0.9, 1.1) scales all four values of a week together.
func (g *Generator) DriverImpact(driverID string) (DriverImpact, error) {
	p, ok := g.profiles.Drivers[driverID]
	if !ok {
		return DriverImpact{}, unknown("driver", driverID)
	}

	base := BaseFor(p)
	series := make([]DriverImpactSample, 0, impactWeeks)
	for week := 1; week <= impactWeeks; week++ {
		f := uniform(g.src, 0.9, 1.1)
		series = append(series, DriverImpactSample{
			TimePoint:      fmt.Sprintf("Week %d", week),
			FuelEfficiency: round(base.FuelMPG*f, 1),
			EngineWear:     round(base.EngineWear*f, 3),
			BrakeWear:      round(base.BrakeWear*f, 3),
			TiresWear:      round(base.TiresWear*f, 3),
		})
	}

	return DriverImpact{
		Driver:         p,
		TimeSeriesData: series,
		DrivingHabits:  g.habits(p),
	}, nil
}

func (g *Generator) habits(p DriverProfile) []HabitScore {
	return []HabitScore{
		{Name: "Acceleration", Score: styleScore(p.Acceleration, 35, 65, 85)},
		{Name: "Braking", Score: styleScore(p.Braking, 40, 70, 90)},
		{Name: "Speed Control", Score: speedScore(p.Speeds)},
		{Name: "Cornering", Score: styleScore(p.Cornering, 35, 65, 90)},
		{Name: "Idling", Score: 50 + g.src.IntN(40)},
	}
}

func styleScore(s Style, aggressive, moderate, other int) int {
	switch s {
	case StyleAggressive:
		return aggressive
	case StyleModerate:
		return moderate
	default:
		return other
	}
}

func speedScore(s Style) int {
	switch s {
	case StyleHigh:
		return 30
	case StyleModerate:
		return 80
	case StyleVarying:
		return 60
	default:
		return 75
	}
}
