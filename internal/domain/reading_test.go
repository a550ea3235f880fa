package domain

import "testing"

func firing(r *EquipmentReading) map[AlertType]bool {
	out := map[AlertType]bool{}
	for _, rule := range DefaultAlertRules {
		if rule.Evaluator(r) {
			out[rule.Type] = true
		}
	}
	return out
}

func TestDefaultAlertRules(t *testing.T) {
	cases := []struct {
		name    string
		reading EquipmentReading
		want    []AlertType
	}{
		{"nominal", EquipmentReading{VibrationMMS: 12, TemperatureC: 50, Health: 95, Threshold: 50}, nil},
		{"vibration rising", EquipmentReading{VibrationMMS: 46, TemperatureC: 60, Health: 60, Threshold: 50}, []AlertType{AlertVibrationHigh}},
		{"at failure threshold", EquipmentReading{VibrationMMS: 50, TemperatureC: 60, Health: 0, Threshold: 50}, []AlertType{AlertFailureThreshold, AlertHealthLow}},
		{"overheating", EquipmentReading{VibrationMMS: 20, TemperatureC: 82, Health: 80, Threshold: 50}, []AlertType{AlertTemperatureHigh}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := firing(&tc.reading)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for _, w := range tc.want {
				if !got[w] {
					t.Fatalf("expected %s to fire, got %v", w, got)
				}
			}
		})
	}
}

func TestFindEquipment(t *testing.T) {
	e, ok := FindEquipment("equip3")
	if !ok || e.Title != "Cooling System #C4" {
		t.Fatalf("unexpected lookup result %+v %v", e, ok)
	}
	if _, ok := FindEquipment("equip99"); ok {
		t.Fatal("expected miss")
	}
}

func TestCatalogStats(t *testing.T) {
	s := CatalogStats()
	if s.TotalEquipment != 6 {
		t.Fatalf("expected 6 items, got %d", s.TotalEquipment)
	}
	if s.HealthyPct != 33.3 {
		t.Fatalf("expected 33.3%% healthy, got %v", s.HealthyPct)
	}
	if s.CriticalAlerts != 1 || s.WarningAlerts != 2 || s.ActiveAlerts != 3 {
		t.Fatalf("unexpected alert counts %+v", s)
	}
}
