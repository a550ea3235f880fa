package domain

import (
	"time"

	"predictive-guardian/internal/synth"
)

type InspectionStatus string

const (
	InspectionPending  InspectionStatus = "pending"
	InspectionComplete InspectionStatus = "complete"
	InspectionFailed   InspectionStatus = "failed"
)

// Inspection tracks one simulated visual scan from request to finding.
type Inspection struct {
	ID          string                   `json:"id"`
	Status      InspectionStatus         `json:"status"`
	StartedAt   time.Time                `json:"started_at"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	Finding     *synth.InspectionFinding `json:"finding,omitempty"`
	Error       string                   `json:"error,omitempty"`
}
