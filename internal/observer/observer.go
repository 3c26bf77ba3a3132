// Package observer implements event notification for the diagnosis
// pipeline: a synchronous bus with pluggable observers for logging and
// running statistics.
package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-plant-inspector/internal/logger"
)

type EventType string

const (
	DiagnosisStarted   EventType = "diagnosis_started"
	DiagnosisCompleted EventType = "diagnosis_completed"
	DiagnosisFailed    EventType = "diagnosis_failed"
)

// DiagnosisEvent carries what an observer needs to act on a pipeline
// transition without reaching back into the record.
type DiagnosisEvent struct {
	Type           EventType
	Timestamp      time.Time
	RecordID       string
	Crop           string
	DiseaseName    string
	IsHealthy      bool
	Source         string
	ProcessingTime time.Duration
	ErrorMessage   string
}

type Observer interface {
	OnEvent(ctx context.Context, event DiagnosisEvent)
	Name() string
}

// EventBus fans events out to subscribed observers in subscription order.
// Delivery is synchronous; observers must not block.
type EventBus struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Subscribe(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

func (b *EventBus) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.observers[:0]
	for _, o := range b.observers {
		if o.Name() != name {
			kept = append(kept, o)
		}
	}
	b.observers = kept
}

func (b *EventBus) Notify(ctx context.Context, event DiagnosisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.mu.RLock()
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.RUnlock()

	for _, o := range observers {
		o.OnEvent(ctx, event)
	}
}

// LoggingObserver writes every event as a structured log line.
type LoggingObserver struct{}

func NewLoggingObserver() *LoggingObserver { return &LoggingObserver{} }

func (o *LoggingObserver) Name() string { return "logging" }

func (o *LoggingObserver) OnEvent(_ context.Context, event DiagnosisEvent) {
	entry := logger.WithFields(logrus.Fields{
		"event":     string(event.Type),
		"record_id": event.RecordID,
		"source":    event.Source,
	})
	switch event.Type {
	case DiagnosisCompleted:
		entry.WithFields(logrus.Fields{
			"crop":          event.Crop,
			"disease":       event.DiseaseName,
			"is_healthy":    event.IsHealthy,
			"processing_ms": event.ProcessingTime.Milliseconds(),
		}).Info("diagnosis completed")
	case DiagnosisFailed:
		entry.WithField("error", event.ErrorMessage).Error("diagnosis failed")
	default:
		entry.Debug("diagnosis started")
	}
}

// StatsObserver keeps running counters over completed diagnoses.
type StatsObserver struct {
	mu        sync.Mutex
	started   int
	completed int
	failed    int
	healthy   int
}

func NewStatsObserver() *StatsObserver { return &StatsObserver{} }

func (o *StatsObserver) Name() string { return "stats" }

func (o *StatsObserver) OnEvent(_ context.Context, event DiagnosisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch event.Type {
	case DiagnosisStarted:
		o.started++
	case DiagnosisCompleted:
		o.completed++
		if event.IsHealthy {
			o.healthy++
		}
	case DiagnosisFailed:
		o.failed++
	}
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Started   int `json:"started"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Healthy   int `json:"healthy"`
}

func (o *StatsObserver) Snapshot() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Stats{Started: o.started, Completed: o.completed, Failed: o.failed, Healthy: o.healthy}
}
