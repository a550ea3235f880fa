package synth

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// timeline zips the monthly baseline/actual/predicted columns of a system table.
func timeline(baseline, actual, predicted []float64) []TimelinePoint {
	out := make([]TimelinePoint, len(months))
	for i, m := range months {
		out[i] = TimelinePoint{Month: m, Baseline: baseline[i], Actual: actual[i], Predicted: predicted[i]}
	}
	return out
}

// DefaultProfiles returns the built-in base parameters. Each call returns fresh maps.
func DefaultProfiles() *Profiles {
	p := &Profiles{
		Drivers: map[string]DriverProfile{
			"driver-1": {Name: "James Wilson", Acceleration: StyleAggressive, Braking: StyleModerate, Speeds: StyleHigh, Cornering: StyleAggressive},
			"driver-2": {Name: "Sarah Johnson", Acceleration: StyleSmooth, Braking: StyleGentle, Speeds: StyleModerate, Cornering: StyleSmooth},
			"driver-3": {Name: "Mike Thompson", Acceleration: StyleModerate, Braking: StyleAggressive, Speeds: StyleVarying, Cornering: StyleModerate},
		},

		Sensors: map[string]SensorSpec{
			"oxygen-sensor": {
				Name: "Oxygen Sensor", Unit: "Volts",
				BeforeMean: 0.45, BeforeVariability: 0.15,
				AfterMean: 0.8, AfterVariability: 0.05,
				IdealValue: 0.8, DataPoints: 24,
				Improvements:    SensorImprovements{FuelEconomy: "+12%", Emissions: "-18%", EnginePerformance: "+8%"},
				ReplacementDate: "2025-04-15",
			},
			"mass-airflow": {
				Name: "Mass Airflow Sensor", Unit: "g/s",
				BeforeMean: 18, BeforeVariability: 4,
				AfterMean: 22, AfterVariability: 1.5,
				IdealValue: 22, DataPoints: 24,
				Improvements:    SensorImprovements{FuelEconomy: "+9%", Emissions: "-12%", EnginePerformance: "+15%"},
				ReplacementDate: "2025-03-22",
			},
			"coolant-temp": {
				Name: "Coolant Temperature Sensor", Unit: "°C",
				BeforeMean: 95, BeforeVariability: 12,
				AfterMean: 88, AfterVariability: 3,
				IdealValue: 88, DataPoints: 24,
				Improvements:    SensorImprovements{FuelEconomy: "+5%", Emissions: "-8%", EnginePerformance: "+6%"},
				ReplacementDate: "2025-04-02",
			},
		},

		Systems: map[string]SystemProfile{
			"engine": {
				Label: "Engine System",
				Timeline: timeline(
					[]float64{100, 99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89},
					[]float64{102, 101, 100, 101, 99, 98, 96, 95, 97, 96, 95, 94},
					[]float64{104, 103, 102, 103, 101, 100, 98, 97, 99, 98, 97, 96},
				),
				Factors: []Factor{
					{"Driver Behavior", 35}, {"Environmental", 25}, {"Component Quality", 20},
					{"Maintenance", 15}, {"Vehicle Age", 5},
				},
				Improvements: []ImprovementMetric{
					{"Lifespan", 92, 98}, {"Performance", 88, 95}, {"Efficiency", 85, 92}, {"Emissions", 78, 90},
				},
			},
			"brakes": {
				Label: "Brake System",
				Timeline: timeline(
					[]float64{100, 98, 96, 94, 92, 90, 88, 86, 84, 82, 80, 78},
					[]float64{98, 96, 94, 93, 91, 92, 90, 89, 87, 85, 84, 82},
					[]float64{97, 95, 93, 92, 90, 93, 92, 91, 89, 87, 86, 84},
				),
				Factors: []Factor{
					{"Driver Behavior", 45}, {"Terrain", 30}, {"Component Quality", 15},
					{"Vehicle Weight", 5}, {"Environmental", 5},
				},
				Improvements: []ImprovementMetric{
					{"Pad Life", 82, 92}, {"Stopping Power", 90, 95}, {"Heat Dissipation", 85, 93}, {"Noise Level", 75, 90},
				},
			},
			"cooling": {
				Label: "Cooling System",
				Timeline: timeline(
					[]float64{100, 99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89},
					[]float64{99, 97, 96, 95, 95, 93, 91, 90, 91, 92, 93, 92},
					[]float64{98, 96, 95, 94, 94, 92, 90, 89, 90, 91, 92, 91},
				),
				Factors: []Factor{
					{"Environmental", 40}, {"Component Quality", 25}, {"Maintenance", 20},
					{"Engine Load", 10}, {"Vehicle Age", 5},
				},
				Improvements: []ImprovementMetric{
					{"Heat Transfer", 84, 94}, {"Fan Efficiency", 80, 92}, {"Pump Life", 82, 95}, {"Corrosion Resistance", 75, 90},
				},
			},
			"electrical": {
				Label: "Electrical System",
				Timeline: timeline(
					[]float64{100, 100, 100, 100, 99, 99, 98, 98, 97, 97, 96, 96},
					[]float64{100, 100, 99, 98, 97, 98, 97, 96, 95, 96, 95, 94},
					[]float64{100, 100, 99, 98, 97, 98, 97, 96, 95, 96, 95, 94},
				),
				Factors: []Factor{
					{"Component Quality", 30}, {"Environmental", 25}, {"Maintenance", 20},
					{"Usage Patterns", 15}, {"Vehicle Age", 10},
				},
				Improvements: []ImprovementMetric{
					{"Battery Life", 88, 96}, {"Start Reliability", 92, 98}, {"Charging Rate", 85, 93}, {"Component Durability", 80, 92},
				},
			},
			"fuel": {
				Label: "Fuel System",
				Timeline: timeline(
					[]float64{100, 99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89},
					[]float64{103, 102, 103, 101, 100, 99, 98, 97, 96, 98, 99, 97},
					[]float64{105, 104, 105, 103, 102, 101, 100, 99, 98, 100, 101, 99},
				),
				Factors: []Factor{
					{"Driver Behavior", 40}, {"Component Quality", 25}, {"Environmental", 15},
					{"Maintenance", 15}, {"Fuel Quality", 5},
				},
				Improvements: []ImprovementMetric{
					{"Efficiency", 82, 94}, {"Power Output", 85, 92}, {"Injector Life", 80, 91}, {"Emissions Rating", 75, 88},
				},
			},
		},

		Terrains: map[string]TerrainProfile{
			"flat":  {Label: "Flat/Plains"},
			"mixed": {Label: "Mixed Terrain"},
			"hilly": {
				Label: "Hilly", EngineLoadPct: 12, TransmissionHeatC: 8,
				BrakeInspectionDaysEarlier: 15, SuspensionWear: true,
			},
			"mountain": {
				Label: "Mountainous", EngineLoadPct: 22, TransmissionHeatC: 15,
				BrakeInspectionDaysEarlier: 30, SuspensionWear: true, ScheduleAdjustment: true,
				HeavyLoad: true,
			},
		},

		Climates: map[string]ClimateProfile{
			"tropical":    {Label: "Tropical", Temperature: 32, Humidity: 80, Precipitation: 60},
			"arid":        {Label: "Arid/Desert", Temperature: 38, Humidity: 15, Precipitation: 5},
			"temperate":   {Label: "Temperate", Temperature: 22, Humidity: 45, Precipitation: 15},
			"continental": {Label: "Continental", Temperature: 12, Humidity: 60, Precipitation: 30},
			"polar":       {Label: "Polar/Arctic", Temperature: -15, Humidity: 70, Precipitation: 20},
		},

		Components: map[string]ComponentProfile{
			"oxygen-sensor": {
				Label: "Oxygen Sensor", Replaced: true,
				EngineLife: "+7.2%", FuelConsumption: "-12.5%", Emissions: "-18.3%",
				MaintenanceSchedule: "+2.5 months",
				Recommendation:      "Maintain current driving patterns to maximize component efficiency.",
			},
			"mass-airflow": {
				Label: "Mass Airflow Sensor", Replaced: true,
				EngineLife: "+5.8%", FuelConsumption: "-9.3%", Emissions: "-12.1%",
				MaintenanceSchedule: "+1.5 months",
				Recommendation:      "Avoid excessive idle time to maintain optimal performance.",
			},
			"coolant-temp": {
				Label: "Coolant Temperature Sensor", Replaced: true,
				EngineLife: "+4.1%", FuelConsumption: "-5.2%", Emissions: "-8.4%",
				MaintenanceSchedule: "+1 month",
				Recommendation:      "Consider coolant flush in 6 months to maintain optimal thermal efficiency.",
			},
			"fuel-injector": {Label: "Fuel Injector"},
			"brake-pads":    {Label: "Brake Pads"},
		},
	}
	p.assignIDs()
	return p
}
