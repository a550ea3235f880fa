package pipeline

import (
	"predictive-guardian/internal/domain"
	"predictive-guardian/internal/metrics"
)

// Dispatcher fans each reading out to the storage, state and alert workers.
// A full channel drops the reading for that worker only.
type Dispatcher struct {
	DBChan    chan *domain.EquipmentReading
	StateChan chan *domain.EquipmentReading
	AlertChan chan *domain.EquipmentReading
}

func NewDispatcher(dbSize, stateSize, alertSize int) *Dispatcher {
	return &Dispatcher{
		DBChan:    make(chan *domain.EquipmentReading, dbSize),
		StateChan: make(chan *domain.EquipmentReading, stateSize),
		AlertChan: make(chan *domain.EquipmentReading, alertSize),
	}
}

func (d *Dispatcher) Dispatch(r *domain.EquipmentReading) {
	select {
	case d.DBChan <- r:
	default:
		metrics.ChannelDrops.WithLabelValues(metrics.ChannelDB).Inc()
	}

	select {
	case d.StateChan <- r:
	default:
		metrics.ChannelDrops.WithLabelValues(metrics.ChannelState).Inc()
	}

	select {
	case d.AlertChan <- r:
	default:
		metrics.ChannelDrops.WithLabelValues(metrics.ChannelAlert).Inc()
	}
}
