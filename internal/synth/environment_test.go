package synth

import (
	"errors"
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestClimateImpact(t *testing.T) {
	g := newSeeded(1)

	cases := []struct {
		name string
		in   ClimateInput
		want ClimateImpact
	}{
		{
			name: "temperate defaults",
			in:   ClimateInput{},
			want: ClimateImpact{OperatingTempC: 81, CoolingLoadPct: 52, BatteryEfficiencyPct: 100, CorrosionRiskPct: 15, SensorAccuracyPct: 100},
		},
		{
			name: "heat",
			in:   ClimateInput{Climate: "arid", Temperature: ptr(40)},
			want: ClimateImpact{EngineCaution: true, OperatingTempC: 100, OilDegradationPct: 20, CoolingLoadPct: 80, BatteryEfficiencyPct: 100, CorrosionRiskPct: 5, SensorAccuracyPct: 100},
		},
		{
			name: "cold and humid",
			in:   ClimateInput{Climate: "polar", Temperature: ptr(0), Humidity: ptr(90)},
			want: ClimateImpact{ElectricalCaution: true, OperatingTempC: 70, CoolingLoadPct: 30, BatteryEfficiencyPct: 85, CorrosionRiskPct: 60, SensorAccuracyPct: 90},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.ClimateImpact(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got.EngineCaution != tc.want.EngineCaution ||
				got.ElectricalCaution != tc.want.ElectricalCaution ||
				got.OperatingTempC != tc.want.OperatingTempC ||
				got.OilDegradationPct != tc.want.OilDegradationPct ||
				got.CoolingLoadPct != tc.want.CoolingLoadPct ||
				got.BatteryEfficiencyPct != tc.want.BatteryEfficiencyPct ||
				got.CorrosionRiskPct != tc.want.CorrosionRiskPct ||
				got.SensorAccuracyPct != tc.want.SensorAccuracyPct {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestClimateImpactRejectsOutOfRange(t *testing.T) {
	g := newSeeded(1)
	for _, in := range []ClimateInput{
		{Temperature: ptr(51)},
		{Temperature: ptr(-21)},
		{Humidity: ptr(101)},
		{Precipitation: ptr(-1)},
		{Temperature: ptr(math.NaN())},
		{Humidity: ptr(math.NaN())},
		{Precipitation: ptr(math.Inf(1))},
	} {
		if _, err := g.ClimateImpact(in); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%+v: expected ErrOutOfRange, got %v", in, err)
		}
	}
}

func TestTerrainRaisesEngineLoad(t *testing.T) {
	g := newSeeded(1)

	flat, err := g.TerrainImpact(TerrainInput{Terrain: "flat"})
	if err != nil {
		t.Fatal(err)
	}
	hilly, _ := g.TerrainImpact(TerrainInput{Terrain: "hilly"})
	mountain, _ := g.TerrainImpact(TerrainInput{Terrain: "mountain"})

	if !(flat.EngineLoadPct < hilly.EngineLoadPct && hilly.EngineLoadPct < mountain.EngineLoadPct) {
		t.Fatalf("engine load not increasing: flat %v hilly %v mountain %v",
			flat.EngineLoadPct, hilly.EngineLoadPct, mountain.EngineLoadPct)
	}
	if flat.PowertrainStress != StressLow || mountain.PowertrainStress != StressModerate {
		t.Fatalf("unexpected stress flat=%s mountain=%s", flat.PowertrainStress, mountain.PowertrainStress)
	}
	if mountain.BrakeInspectionDaysEarlier != 30 || hilly.BrakeInspectionDaysEarlier != 15 || flat.BrakeInspectionDaysEarlier != 0 {
		t.Fatal("unexpected brake inspection shift")
	}
	if !hilly.SuspensionWear || flat.SuspensionWear {
		t.Fatal("unexpected suspension wear flags")
	}
}

func TestTerrainElevation(t *testing.T) {
	g := newSeeded(1)

	got, err := g.TerrainImpact(TerrainInput{Terrain: "flat", Elevation: 2000})
	if err != nil {
		t.Fatal(err)
	}
	if got.FuelEfficiencyPct != 90 || got.OilIntervalReductionPct != 5 || got.PowertrainStress != StressModerate {
		t.Fatalf("unexpected high-altitude impact %+v", got)
	}

	low, _ := g.TerrainImpact(TerrainInput{Terrain: "flat", Elevation: 1500})
	if low.FuelEfficiencyPct != 100 || low.OilIntervalReductionPct != 0 {
		t.Fatalf("unexpected impact at 1500 m %+v", low)
	}

	if _, err := g.TerrainImpact(TerrainInput{Terrain: "flat", Elevation: math.NaN()}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for NaN elevation, got %v", err)
	}
	if _, err := g.TerrainImpact(TerrainInput{Terrain: "flat", Elevation: 3001}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
