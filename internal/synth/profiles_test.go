package synth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProfiles(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProfilesEmptyPathReturnsDefaults(t *testing.T) {
	p, err := LoadProfiles("")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Drivers) != 3 || len(p.Sensors) != 3 || len(p.Systems) != 5 || len(p.Terrains) != 4 {
		t.Fatalf("unexpected default table sizes: %d drivers, %d sensors, %d systems, %d terrains",
			len(p.Drivers), len(p.Sensors), len(p.Systems), len(p.Terrains))
	}
	if p.Sensors["coolant-temp"].ID != "coolant-temp" {
		t.Fatal("expected ids assigned from keys")
	}
}

func TestLoadProfilesOverlaysByKey(t *testing.T) {
	path := writeProfiles(t, `
drivers:
  driver-4:
    name: Priya Nair
    acceleration: smooth
    braking: gentle
    speeds: moderate
    cornering: smooth
sensors:
  oxygen-sensor:
    name: Oxygen Sensor (wideband)
    unit: Volts
    before_mean: 0.5
    before_variability: 0.2
    after_mean: 0.9
    after_variability: 0.02
    ideal_value: 0.9
    data_points: 12
`)

	p, err := LoadProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if d := p.Drivers["driver-4"]; d.ID != "driver-4" || d.Name != "Priya Nair" {
		t.Fatalf("unexpected overlay driver %+v", d)
	}
	if _, ok := p.Drivers["driver-1"]; !ok {
		t.Fatal("defaults lost during overlay")
	}

	g := New(NewSource(1), p)
	cmp, err := g.SensorComparison("oxygen-sensor")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmp.Data) != 24 {
		t.Fatalf("expected 24 readings from overridden sensor, got %d", len(cmp.Data))
	}
}

func TestLoadProfilesRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"negative variability": `
sensors:
  bad:
    before_variability: -1
    data_points: 4
`,
		"no points": `
sensors:
  bad:
    data_points: 0
`,
		"incomplete driver": `
drivers:
  driver-x:
    name: Nobody
`,
		"climate too hot": `
climates:
  desert:
    temperature: 200
    humidity: 10
`,
		"terrain overloaded": `
terrains:
  cliff:
    engine_load_pct: 140
`,
		"malformed": "drivers: [",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadProfiles(writeProfiles(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadProfilesMissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read profiles") {
		t.Fatalf("expected read error, got %v", err)
	}
}
