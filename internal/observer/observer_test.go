package observer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	mu     sync.Mutex
	name   string
	events []DiagnosisEvent
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) OnEvent(_ context.Context, event DiagnosisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func TestEventBusNotifiesSubscribers(t *testing.T) {
	bus := NewEventBus()
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Notify(context.Background(), DiagnosisEvent{Type: DiagnosisStarted, RecordID: "1"})

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
	assert.False(t, a.events[0].Timestamp.IsZero())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &recordingObserver{name: "a"}
	bus.Subscribe(a)
	bus.Unsubscribe("a")

	bus.Notify(context.Background(), DiagnosisEvent{Type: DiagnosisStarted})
	assert.Zero(t, a.count())
}

func TestStatsObserverCounts(t *testing.T) {
	stats := NewStatsObserver()
	ctx := context.Background()

	stats.OnEvent(ctx, DiagnosisEvent{Type: DiagnosisStarted})
	stats.OnEvent(ctx, DiagnosisEvent{Type: DiagnosisCompleted, IsHealthy: true})
	stats.OnEvent(ctx, DiagnosisEvent{Type: DiagnosisCompleted})
	stats.OnEvent(ctx, DiagnosisEvent{Type: DiagnosisFailed})

	snapshot := stats.Snapshot()
	assert.Equal(t, Stats{Started: 1, Completed: 2, Failed: 1, Healthy: 1}, snapshot)
}

func TestEventBusConcurrentNotify(t *testing.T) {
	bus := NewEventBus()
	stats := NewStatsObserver()
	bus.Subscribe(stats)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Notify(context.Background(), DiagnosisEvent{Type: DiagnosisCompleted})
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, stats.Snapshot().Completed)
}
