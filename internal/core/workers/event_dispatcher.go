package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

const defaultQueueSize = 100

// EventSink delivers one event to the outside world, e.g. a Kafka topic.
type EventSink interface {
	Send(ctx context.Context, event domain.LifecycleEvent) error
}

// PublishRecorder is told about every delivery attempt.
type PublishRecorder interface {
	RecordPublish(eventType string, err error)
}

// EventDispatcher decouples lifecycle transitions from event delivery. Publish never
// blocks; when the queue is full the event is dropped and logged.
type EventDispatcher struct {
	sink        EventSink
	recorder    PublishRecorder
	logger      *zap.Logger
	jobs        chan domain.LifecycleEvent
	sendTimeout time.Duration
	done        chan struct{}
	startOnce   sync.Once
}

func NewEventDispatcher(sink EventSink, recorder PublishRecorder, logger *zap.Logger) *EventDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventDispatcher{
		sink:        sink,
		recorder:    recorder,
		logger:      logger,
		jobs:        make(chan domain.LifecycleEvent, defaultQueueSize),
		sendTimeout: 5 * time.Second,
		done:        make(chan struct{}),
	}
}

// Start runs the delivery loop until ctx is cancelled. Events still queued at that
// point are flushed with a short deadline.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go func() {
			defer close(d.done)
			d.logger.Info("event dispatcher started")
			for {
				select {
				case event := <-d.jobs:
					d.deliver(context.Background(), event)
				case <-ctx.Done():
					d.drain()
					d.logger.Info("event dispatcher shutting down")
					return
				}
			}
		}()
	})
}

// Done is closed once the loop has exited.
func (d *EventDispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *EventDispatcher) Publish(event domain.LifecycleEvent) {
	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("event queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("warehouse_id", event.WarehouseID),
			zap.String("season_id", event.SeasonID),
		)
	}
}

func (d *EventDispatcher) drain() {
	for {
		select {
		case event := <-d.jobs:
			d.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (d *EventDispatcher) deliver(ctx context.Context, event domain.LifecycleEvent) {
	ctx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	err := d.sink.Send(ctx, event)
	if d.recorder != nil {
		d.recorder.RecordPublish(event.Type, err)
	}
	if err != nil {
		d.logger.Error("failed to publish lifecycle event",
			zap.String("type", event.Type),
			zap.String("season_id", event.SeasonID),
			zap.Error(err),
		)
	}
}
