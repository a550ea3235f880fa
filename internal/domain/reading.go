package domain

import "time"

type EquipmentStatus string

const (
	StatusHealthy     EquipmentStatus = "healthy"
	StatusWarning     EquipmentStatus = "warning"
	StatusCritical    EquipmentStatus = "critical"
	StatusMaintenance EquipmentStatus = "maintenance"
)

type EquipmentReading struct {
	Timestamp   time.Time
	EquipmentID string
	Name        string

	VibrationMMS float64
	TemperatureC float64
	Health       float64
	Status       EquipmentStatus

	Threshold float64
}

type AlertType string

const (
	AlertVibrationHigh    AlertType = "VIBRATION_HIGH"
	AlertFailureThreshold AlertType = "FAILURE_THRESHOLD"
	AlertTemperatureHigh  AlertType = "TEMPERATURE_HIGH"
	AlertHealthLow        AlertType = "HEALTH_LOW"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "INFO"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityCritical AlertSeverity = "CRITICAL"
)

type AlertRule struct {
	Type      AlertType
	Severity  AlertSeverity
	Evaluator func(r *EquipmentReading) bool
	Value     func(r *EquipmentReading) float64
}

var DefaultAlertRules = []AlertRule{
	{
		Type:      AlertVibrationHigh,
		Severity:  SeverityWarning,
		Evaluator: func(r *EquipmentReading) bool { return r.VibrationMMS > 45.0 && r.VibrationMMS < r.Threshold },
		Value:     func(r *EquipmentReading) float64 { return r.VibrationMMS },
	},
	{
		Type:      AlertFailureThreshold,
		Severity:  SeverityCritical,
		Evaluator: func(r *EquipmentReading) bool { return r.VibrationMMS >= r.Threshold },
		Value:     func(r *EquipmentReading) float64 { return r.VibrationMMS },
	},
	{
		Type:      AlertTemperatureHigh,
		Severity:  SeverityCritical,
		Evaluator: func(r *EquipmentReading) bool { return r.TemperatureC > 80.0 },
		Value:     func(r *EquipmentReading) float64 { return r.TemperatureC },
	},
	{
		Type:      AlertHealthLow,
		Severity:  SeverityWarning,
		Evaluator: func(r *EquipmentReading) bool { return r.Health < 50.0 },
		Value:     func(r *EquipmentReading) float64 { return r.Health },
	},
}

// Alert is a rule that fired on a live reading.
type Alert struct {
	ID             string        `json:"id"`
	EquipmentID    string        `json:"equipment_id"`
	EquipmentName  string        `json:"equipment_name"`
	Type           AlertType     `json:"alert_type"`
	Severity       AlertSeverity `json:"severity"`
	TriggeredValue float64       `json:"value"`
	TriggeredAt    time.Time     `json:"triggered_at"`
}
