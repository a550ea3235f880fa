package synth

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type InspectionFinding struct {
	Component string   `json:"component"`
	Location  string   `json:"location"`
	Issue     string   `json:"issue"`
	Solution  string   `json:"solution"`
	Cost      float64  `json:"cost"`
	Severity  Severity `json:"severity"`
}

var inspectionFindings = []InspectionFinding{
	{
		Component: "Brake Caliper",
		Location:  "Front Right Wheel",
		Issue:     "Excessive wear on brake pad (2mm remaining)",
		Solution:  "Replace brake pads and inspect rotor surface",
		Cost:      149.99,
		Severity:  SeverityHigh,
	},
	{
		Component: "Air Filter",
		Location:  "Engine Bay, Right Side",
		Issue:     "Clogged with debris, restricting airflow",
		Solution:  "Replace air filter element",
		Cost:      24.99,
		Severity:  SeverityMedium,
	},
	{
		Component: "Oil Gasket",
		Location:  "Engine, Lower Crankcase",
		Issue:     "Minor oil seepage detected",
		Solution:  "Replace oil pan gasket during next service",
		Cost:      89.95,
		Severity:  SeverityLow,
	},
}

// Findings lists every finding a scan can report.
func Findings() []InspectionFinding {
	return append([]InspectionFinding(nil), inspectionFindings...)
}

// Inspect simulates a visual scan: it waits for the scan delay, then reports one finding
// chosen uniformly. It returns ctx.Err() if the context ends first.
func (g *Generator) Inspect(ctx context.Context) (InspectionFinding, error) {
	timer := time.NewTimer(g.scanDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return InspectionFinding{}, ctx.Err()
	}

	return inspectionFindings[g.src.IntN(len(inspectionFindings))], nil
}
