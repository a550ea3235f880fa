package synth

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Style string

const (
	StyleAggressive Style = "aggressive"
	StyleModerate   Style = "moderate"
	StyleSmooth     Style = "smooth"
	StyleGentle     Style = "gentle"
	StyleHigh       Style = "high"
	StyleVarying    Style = "varying"
)

type DriverProfile struct {
	ID           string `yaml:"-" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Acceleration Style  `yaml:"acceleration" json:"acceleration"`
	Braking      Style  `yaml:"braking" json:"braking"`
	Speeds       Style  `yaml:"speeds" json:"speeds"`
	Cornering    Style  `yaml:"cornering" json:"cornering"`
}

type SensorImprovements struct {
	FuelEconomy       string `yaml:"fuel_economy" json:"fuelEconomy"`
	Emissions         string `yaml:"emissions" json:"emissions"`
	EnginePerformance string `yaml:"engine_performance" json:"enginePerformance"`
}

type SensorSpec struct {
	ID                string             `yaml:"-" json:"id"`
	Name              string             `yaml:"name" json:"name"`
	Unit              string             `yaml:"unit" json:"unit"`
	BeforeMean        float64            `yaml:"before_mean" json:"beforeMean"`
	BeforeVariability float64            `yaml:"before_variability" json:"beforeVariability"`
	AfterMean         float64            `yaml:"after_mean" json:"afterMean"`
	AfterVariability  float64            `yaml:"after_variability" json:"afterVariability"`
	IdealValue        float64            `yaml:"ideal_value" json:"idealValue"`
	DataPoints        int                `yaml:"data_points" json:"dataPoints"`
	Improvements      SensorImprovements `yaml:"improvements" json:"improvementMetrics"`
	ReplacementDate   string             `yaml:"replacement_date" json:"replacementDate"`
}

type TimelinePoint struct {
	Month     string  `yaml:"month" json:"month"`
	Baseline  float64 `yaml:"baseline" json:"baseline"`
	Actual    float64 `yaml:"actual" json:"actual"`
	Predicted float64 `yaml:"predicted" json:"predicted"`
}

type Factor struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
}

type ImprovementMetric struct {
	Name     string  `yaml:"name" json:"name"`
	Current  float64 `yaml:"current" json:"current"`
	Improved float64 `yaml:"improved" json:"improved"`
}

type SystemProfile struct {
	ID           string              `yaml:"-" json:"id"`
	Label        string              `yaml:"label" json:"label"`
	Timeline     []TimelinePoint     `yaml:"timeline" json:"timeline"`
	Factors      []Factor            `yaml:"factors" json:"factors"`
	Improvements []ImprovementMetric `yaml:"improvements" json:"improvements"`
}

type TerrainProfile struct {
	ID                         string  `yaml:"-" json:"id"`
	Label                      string  `yaml:"label" json:"label"`
	EngineLoadPct              float64 `yaml:"engine_load_pct" json:"engineLoadPct"`
	TransmissionHeatC          float64 `yaml:"transmission_heat_c" json:"transmissionHeatC"`
	BrakeInspectionDaysEarlier int     `yaml:"brake_inspection_days_earlier" json:"brakeInspectionDaysEarlier"`
	SuspensionWear             bool    `yaml:"suspension_wear" json:"suspensionWear"`
	ScheduleAdjustment         bool    `yaml:"schedule_adjustment" json:"scheduleAdjustment"`
	HeavyLoad                  bool    `yaml:"heavy_load" json:"heavyLoad"`
}

type ClimateProfile struct {
	ID            string  `yaml:"-" json:"id"`
	Label         string  `yaml:"label" json:"label"`
	Temperature   float64 `yaml:"temperature" json:"temperature"`
	Humidity      float64 `yaml:"humidity" json:"humidity"`
	Precipitation float64 `yaml:"precipitation" json:"precipitation"`
}

type ComponentProfile struct {
	ID                  string `yaml:"-" json:"id"`
	Label               string `yaml:"label" json:"label"`
	Replaced            bool   `yaml:"replaced" json:"replaced"`
	EngineLife          string `yaml:"engine_life" json:"engineLife,omitempty"`
	FuelConsumption     string `yaml:"fuel_consumption" json:"fuelConsumption,omitempty"`
	Emissions           string `yaml:"emissions" json:"emissions,omitempty"`
	MaintenanceSchedule string `yaml:"maintenance_schedule" json:"maintenanceSchedule,omitempty"`
	Recommendation      string `yaml:"recommendation" json:"recommendation,omitempty"`
}

func (c ComponentProfile) hasImpact() bool {
	return c.EngineLife != "" || c.Recommendation != ""
}

// Profiles is the base-parameter configuration behind every generator, keyed by category id.
type Profiles struct {
	Drivers    map[string]DriverProfile    `yaml:"drivers"`
	Sensors    map[string]SensorSpec       `yaml:"sensors"`
	Systems    map[string]SystemProfile    `yaml:"systems"`
	Terrains   map[string]TerrainProfile   `yaml:"terrains"`
	Climates   map[string]ClimateProfile   `yaml:"climates"`
	Components map[string]ComponentProfile `yaml:"components"`
}

// LoadProfiles reads a YAML file and overlays its entries onto DefaultProfiles by key.
// An empty path returns the defaults.
func LoadProfiles(path string) (*Profiles, error) {
	p := DefaultProfiles()
	if path == "" {
		return p, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}

	var overlay Profiles
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	merge(p.Drivers, overlay.Drivers)
	merge(p.Sensors, overlay.Sensors)
	merge(p.Systems, overlay.Systems)
	merge(p.Terrains, overlay.Terrains)
	merge(p.Climates, overlay.Climates)
	merge(p.Components, overlay.Components)
	p.assignIDs()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profiles %s: %w", path, err)
	}
	return p, nil
}

func merge[V any](dst, src map[string]V) {
	for k, v := range src {
		dst[k] = v
	}
}

func (p *Profiles) assignIDs() {
	for k, v := range p.Drivers {
		v.ID = k
		p.Drivers[k] = v
	}
	for k, v := range p.Sensors {
		v.ID = k
		p.Sensors[k] = v
	}
	for k, v := range p.Systems {
		v.ID = k
		p.Systems[k] = v
	}
	for k, v := range p.Terrains {
		v.ID = k
		p.Terrains[k] = v
	}
	for k, v := range p.Climates {
		v.ID = k
		p.Climates[k] = v
	}
	for k, v := range p.Components {
		v.ID = k
		p.Components[k] = v
	}
}

func (p *Profiles) Validate() error {
	for id, s := range p.Sensors {
		if s.DataPoints <= 0 {
			return fmt.Errorf("sensor %q: data_points must be positive", id)
		}
		if s.BeforeVariability < 0 || s.AfterVariability < 0 {
			return fmt.Errorf("sensor %q: variability must not be negative", id)
		}
	}
	for id, s := range p.Systems {
		if len(s.Timeline) == 0 {
			return fmt.Errorf("system %q: empty timeline", id)
		}
	}
	for id, d := range p.Drivers {
		if d.Acceleration == "" || d.Braking == "" || d.Speeds == "" || d.Cornering == "" {
			return fmt.Errorf("driver %q: incomplete style", id)
		}
	}
	for id, c := range p.Climates {
		if err := checkClimate(c.Temperature, c.Humidity, c.Precipitation); err != nil {
			return fmt.Errorf("climate %q: %w", id, err)
		}
	}
	for id, tp := range p.Terrains {
		if !inRange(tp.EngineLoadPct, 0, 100) {
			return fmt.Errorf("terrain %q: engine_load_pct %.1f not in [0,100]: %w", id, tp.EngineLoadPct, ErrOutOfRange)
		}
		if tp.BrakeInspectionDaysEarlier < 0 {
			return fmt.Errorf("terrain %q: brake_inspection_days_earlier must not be negative", id)
		}
	}
	return nil
}

// DriverList returns the driver profiles ordered by id.
func (p *Profiles) DriverList() []DriverProfile {
	out := make([]DriverProfile, 0, len(p.Drivers))
	for _, d := range p.Drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (p *Profiles) SensorList() []SensorSpec {
	out := make([]SensorSpec, 0, len(p.Sensors))
	for _, s := range p.Sensors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
