package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

type memorySink struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
	err    error
}

func (s *memorySink) Send(ctx context.Context, event domain.LifecycleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type countingRecorder struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (r *countingRecorder) RecordPublish(eventType string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		return
	}
	r.ok++
}

func TestEventDispatcher_DeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	recorder := &countingRecorder{}
	d := NewEventDispatcher(sink, recorder, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(domain.LifecycleEvent{Type: domain.EventWeekOpened, SeasonID: "s-1"})
	d.Publish(domain.LifecycleEvent{Type: domain.EventWeekClosed, SeasonID: "s-1"})

	require.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)

	sink.mu.Lock()
	assert.Equal(t, domain.EventWeekOpened, sink.events[0].Type)
	assert.Equal(t, domain.EventWeekClosed, sink.events[1].Type)
	sink.mu.Unlock()

	recorder.mu.Lock()
	assert.Equal(t, 2, recorder.ok)
	recorder.mu.Unlock()
}

func TestEventDispatcher_SinkErrorsAreRecorded(t *testing.T) {
	sink := &memorySink{err: errors.New("broker unavailable")}
	recorder := &countingRecorder{}
	d := NewEventDispatcher(sink, recorder, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(domain.LifecycleEvent{Type: domain.EventSeasonFinalized, SeasonID: "s-1"})

	require.Eventually(t, func() bool {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		return recorder.failed == 1
	}, time.Second, 5*time.Millisecond)
}

func TestEventDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memorySink{}
	d := NewEventDispatcher(sink, nil, nil)

	for i := 0; i < defaultQueueSize+10; i++ {
		d.Publish(domain.LifecycleEvent{Type: domain.EventWeekOpened})
	}
	assert.Len(t, d.jobs, defaultQueueSize)
}

func TestEventDispatcher_FlushesOnShutdown(t *testing.T) {
	sink := &memorySink{}
	d := NewEventDispatcher(sink, nil, nil)

	for i := 0; i < 5; i++ {
		d.Publish(domain.LifecycleEvent{Type: domain.EventWeekOpened})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
	assert.Equal(t, 5, sink.count())
}
