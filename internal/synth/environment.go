package synth

import (
	"fmt"
	"math"
)

const (
	MinTemperature = -20.0
	MaxTemperature = 50.0
	MaxElevation   = 3000.0

	hotThreshold      = 30.0
	coldThreshold     = 5.0
	humidThreshold    = 70.0
	saturatedHumidity = 80.0
	highAltitude      = 1500.0

	DefaultClimate = "temperate"
)

type ClimateInput struct {
	Climate       string
	Temperature   *float64
	Humidity      *float64
	Precipitation *float64
}

type ClimateImpact struct {
	Climate       ClimateProfile `json:"climate"`
	Temperature   float64        `json:"temperature"`
	Humidity      float64        `json:"humidity"`
	Precipitation float64        `json:"precipitation"`

	EngineCaution        bool    `json:"engineCaution"`
	OperatingTempC       float64 `json:"operatingTempC"`
	OilDegradationPct    float64 `json:"oilDegradationPct"`
	CoolingLoadPct       float64 `json:"coolingLoadPct"`
	ElectricalCaution    bool    `json:"electricalCaution"`
	BatteryEfficiencyPct float64 `json:"batteryEfficiencyPct"`
	CorrosionRiskPct     float64 `json:"corrosionRiskPct"`
	SensorAccuracyPct    float64 `json:"sensorAccuracyPct"`
}

// ClimateImpact derives engine and electrical stress from ambient conditions. Values missing
// from the input fall back to the climate's defaults.
func (g *Generator) ClimateImpact(in ClimateInput) (ClimateImpact, error) {
	key := in.Climate
	if key == "" {
		key = DefaultClimate
	}
	c, ok := g.profiles.Climates[key]
	if !ok {
		return ClimateImpact{}, unknown("climate", key)
	}

	t := valueOr(in.Temperature, c.Temperature)
	h := valueOr(in.Humidity, c.Humidity)
	p := valueOr(in.Precipitation, c.Precipitation)

	if err := checkClimate(t, h, p); err != nil {
		return ClimateImpact{}, err
	}

	out := ClimateImpact{
		Climate:              c,
		Temperature:          t,
		Humidity:             h,
		Precipitation:        p,
		BatteryEfficiencyPct: 100,
		SensorAccuracyPct:    100,
	}

	if t > hotThreshold {
		out.EngineCaution = true
		out.OperatingTempC = 85 + (t-hotThreshold)*1.5
		out.OilDegradationPct = (t - hotThreshold) * 2
		out.CoolingLoadPct = 60 + (t-hotThreshold)*2
	} else {
		out.OperatingTempC = 85 - (hotThreshold-t)*0.5
		out.CoolingLoadPct = 60 - (hotThreshold - t)
	}

	if t < coldThreshold {
		out.BatteryEfficiencyPct = 100 - (coldThreshold-t)*3
	}

	if h > humidThreshold {
		out.ElectricalCaution = true
		out.CorrosionRiskPct = (h - humidThreshold) * 3
	} else {
		out.CorrosionRiskPct = round(h/3, 1)
	}
	if h > saturatedHumidity {
		out.SensorAccuracyPct = 100 - (h - saturatedHumidity)
	}

	return out, nil
}

type TerrainInput struct {
	Terrain   string
	Elevation float64
}

type TerrainImpact struct {
	Terrain   TerrainProfile `json:"terrain"`
	Elevation float64        `json:"elevation"`

	PowertrainStress           string  `json:"powertrainStress"`
	EngineLoadPct              float64 `json:"engineLoadPct"`
	FuelEfficiencyPct          float64 `json:"fuelEfficiencyPct"`
	TransmissionHeatC          float64 `json:"transmissionHeatC"`
	ScheduleAdjustment         bool    `json:"scheduleAdjustment"`
	BrakeInspectionDaysEarlier int     `json:"brakeInspectionDaysEarlier"`
	SuspensionWear             bool    `json:"suspensionWear"`
	OilIntervalReductionPct    float64 `json:"oilIntervalReductionPct"`
}

const (
	StressLow      = "low"
	StressModerate = "moderate"
)

// TerrainImpact derives powertrain load and maintenance scheduling shifts from road terrain
// and elevation. Thin air above 1500 m costs fuel efficiency and shortens oil intervals.
func (g *Generator) TerrainImpact(in TerrainInput) (TerrainImpact, error) {
	tp, ok := g.profiles.Terrains[in.Terrain]
	if !ok {
		return TerrainImpact{}, unknown("terrain", in.Terrain)
	}
	if !inRange(in.Elevation, 0, MaxElevation) {
		return TerrainImpact{}, fmt.Errorf("elevation %.0f not in [0,%g]: %w", in.Elevation, MaxElevation, ErrOutOfRange)
	}

	out := TerrainImpact{
		Terrain:                    tp,
		Elevation:                  in.Elevation,
		PowertrainStress:           StressLow,
		EngineLoadPct:              tp.EngineLoadPct,
		FuelEfficiencyPct:          100,
		TransmissionHeatC:          tp.TransmissionHeatC,
		ScheduleAdjustment:         tp.ScheduleAdjustment,
		BrakeInspectionDaysEarlier: tp.BrakeInspectionDaysEarlier,
		SuspensionWear:             tp.SuspensionWear,
	}

	high := in.Elevation > highAltitude
	if high {
		out.FuelEfficiencyPct = 100 - (in.Elevation-highAltitude)/50
		out.OilIntervalReductionPct = math.Round((in.Elevation - highAltitude) / 100)
	}
	if tp.HeavyLoad || high {
		out.PowertrainStress = StressModerate
	}
	return out, nil
}

// checkClimate also rejects NaN, which fails every ordered comparison.
func checkClimate(t, h, p float64) error {
	if !inRange(t, MinTemperature, MaxTemperature) {
		return fmt.Errorf("temperature %.1f not in [%g,%g]: %w", t, MinTemperature, MaxTemperature, ErrOutOfRange)
	}
	if !inRange(h, 0, 100) {
		return fmt.Errorf("humidity %.1f not in [0,100]: %w", h, ErrOutOfRange)
	}
	if !inRange(p, 0, 100) {
		return fmt.Errorf("precipitation %.1f not in [0,100]: %w", p, ErrOutOfRange)
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
