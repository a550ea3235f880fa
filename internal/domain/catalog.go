package domain

import "math"

type Equipment struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Type            string          `json:"type"`
	Health          float64         `json:"health"`
	Status          EquipmentStatus `json:"status"`
	LastMaintenance string          `json:"lastMaintenance"`
	NextPrediction  string          `json:"nextPrediction"`
}

var Equipments = []Equipment{
	{ID: "equip1", Title: "Engine Compressor #A2", Type: "Rotary Compressor", Health: 92, Status: StatusHealthy, LastMaintenance: "2025-03-15", NextPrediction: "2025-07-22"},
	{ID: "equip2", Title: "Hydraulic Pump #B7", Type: "Variable Displacement", Health: 68, Status: StatusWarning, LastMaintenance: "2025-02-03", NextPrediction: "2025-05-18"},
	{ID: "equip3", Title: "Cooling System #C4", Type: "Heat Exchanger", Health: 42, Status: StatusCritical, LastMaintenance: "2024-12-12", NextPrediction: "2025-04-30"},
	{ID: "equip4", Title: "Conveyor #D9", Type: "Belt Drive", Health: 84, Status: StatusHealthy, LastMaintenance: "2025-03-30", NextPrediction: "2025-08-15"},
	{ID: "equip5", Title: "Electric Motor #E6", Type: "AC Induction", Health: 76, Status: StatusWarning, LastMaintenance: "2025-01-25", NextPrediction: "2025-05-10"},
	{ID: "equip6", Title: "Boiler System #F2", Type: "Fire Tube", Health: 88, Status: StatusMaintenance, LastMaintenance: "2025-03-05", NextPrediction: "2025-06-15"},
}

type NoticeSeverity string

const (
	NoticeCritical NoticeSeverity = "critical"
	NoticeWarning  NoticeSeverity = "warning"
	NoticeInfo     NoticeSeverity = "info"
	NoticeResolved NoticeSeverity = "resolved"
)

// Notice is an operator-facing entry of the dashboard alert list.
type Notice struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timestamp   string         `json:"timestamp"`
	Severity    NoticeSeverity `json:"severity"`
	Equipment   string         `json:"equipment"`
}

var Notices = []Notice{
	{ID: "alert1", Title: "Critical temperature threshold exceeded", Description: "Cooling System #C4 temperature has reached 82°C, exceeding critical threshold of 80°C", Timestamp: "Today, 10:42 AM", Severity: NoticeCritical, Equipment: "Cooling System #C4"},
	{ID: "alert2", Title: "Abnormal vibration detected", Description: "Hydraulic Pump #B7 showing abnormal vibration patterns, early intervention recommended", Timestamp: "Today, 9:15 AM", Severity: NoticeWarning, Equipment: "Hydraulic Pump #B7"},
	{ID: "alert3", Title: "Maintenance reminder", Description: "Scheduled maintenance due for Electric Motor #E6 within next 7 days", Timestamp: "Yesterday, 4:30 PM", Severity: NoticeInfo, Equipment: "Electric Motor #E6"},
	{ID: "alert4", Title: "Pressure anomaly detected", Description: "Unusual pressure fluctuations detected in Boiler System #F2", Timestamp: "Yesterday, 1:20 PM", Severity: NoticeWarning, Equipment: "Boiler System #F2"},
	{ID: "alert5", Title: "Calibration completed", Description: "Sensor calibration for Conveyor #D9 completed successfully", Timestamp: "Apr 21, 2:15 PM", Severity: NoticeResolved, Equipment: "Conveyor #D9"},
}

type MaintenancePrediction struct {
	ID         string `json:"id"`
	Component  string `json:"component"`
	Prediction string `json:"prediction"`
	Confidence int    `json:"confidence"`
	Severity   string `json:"severity"`
}

var MaintenancePredictions = []MaintenancePrediction{
	{ID: "1", Component: "Battery System", Prediction: "Potential failure in 15 days", Confidence: 89, Severity: "high"},
	{ID: "2", Component: "Brake System", Prediction: "Service required in 30 days", Confidence: 78, Severity: "medium"},
}

type MaintenanceEvent struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalDate string `json:"originalDate"`
	AdjustedDate string `json:"adjustedDate"`
	Impact       string `json:"impact"`
	Reason       string `json:"reason"`
	Priority     string `json:"priority"`
}

var MaintenanceTimeline = []MaintenanceEvent{
	{ID: 1, Name: "Oil Change", OriginalDate: "2025-07-12", AdjustedDate: "2025-06-15", Impact: "earlier", Reason: "High temperature operation and city driving patterns detected", Priority: "medium"},
	{ID: 2, Name: "Brake Inspection", OriginalDate: "2025-08-05", AdjustedDate: "2025-07-22", Impact: "earlier", Reason: "Mountainous terrain driving increasing brake wear rate", Priority: "medium"},
	{ID: 3, Name: "Coolant System Flush", OriginalDate: "2025-06-30", AdjustedDate: "2025-05-28", Impact: "earlier", Reason: "Operating temperature exceeds optimal range by 12%", Priority: "high"},
	{ID: 4, Name: "Timing Belt Replacement", OriginalDate: "2025-12-15", AdjustedDate: "2026-02-10", Impact: "later", Reason: "Recent driving patterns indicate less strain than expected", Priority: "low"},
	{ID: 5, Name: "Battery Health Check", OriginalDate: "2025-09-20", AdjustedDate: "2025-08-10", Impact: "earlier", Reason: "Climate factors affecting battery performance", Priority: "medium"},
}

// FindEquipment looks an item up by id.
func FindEquipment(id string) (Equipment, bool) {
	for _, e := range Equipments {
		if e.ID == id {
			return e, true
		}
	}
	return Equipment{}, false
}

// Stats summarizes the catalog for the dashboard header cards.
type Stats struct {
	TotalEquipment   int     `json:"totalEquipment"`
	HealthyPct       float64 `json:"healthyPct"`
	ActiveAlerts     int     `json:"activeAlerts"`
	CriticalAlerts   int     `json:"criticalAlerts"`
	WarningAlerts    int     `json:"warningAlerts"`
	AverageUptimePct float64 `json:"averageUptimePct"`
}

// AverageUptimePct is the fleet uptime over the last 30 days.
const AverageUptimePct = 99.6

// CatalogStats counts critical and warning notices as active; info and resolved ones are not.
func CatalogStats() Stats {
	s := Stats{TotalEquipment: len(Equipments), AverageUptimePct: AverageUptimePct}
	healthy := 0
	for _, e := range Equipments {
		if e.Status == StatusHealthy {
			healthy++
		}
	}
	if s.TotalEquipment > 0 {
		s.HealthyPct = math.Round(float64(healthy)/float64(s.TotalEquipment)*1000) / 10
	}
	for _, n := range Notices {
		switch n.Severity {
		case NoticeCritical:
			s.CriticalAlerts++
		case NoticeWarning:
			s.WarningAlerts++
		}
	}
	s.ActiveAlerts = s.CriticalAlerts + s.WarningAlerts
	return s
}

type HealthScore struct {
	Time  string `json:"time"`
	Score int    `json:"score"`
}

// VehicleHealth is the vehicle health score over the last 24 hours in 4 hour steps.
var VehicleHealth = []HealthScore{
	{Time: "00:00", Score: 92},
	{Time: "04:00", Score: 88},
	{Time: "08:00", Score: 85},
	{Time: "12:00", Score: 82},
	{Time: "16:00", Score: 78},
	{Time: "20:00", Score: 75},
}
