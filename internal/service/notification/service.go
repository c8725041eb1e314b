package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Config holds dispatcher configuration
type Config struct {
	WorkerCount int           // default: 2
	QueueSize   int           // default: 100
	Timeout     time.Duration // default: 10 seconds, per event across all sinks
}

type dispatcher struct {
	sinks   []notification.Sink
	metrics *metrics.Metrics
	config  Config

	queue    chan notification.PunchEvent
	wg       sync.WaitGroup
	stopCh   chan struct{}
	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewDispatcher starts the background workers. With no sinks every event is
// accepted and discarded.
func NewDispatcher(sinks []notification.Sink, m *metrics.Metrics, cfg Config) notification.Dispatcher {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	d := &dispatcher{
		sinks:   sinks,
		metrics: m,
		config:  cfg,
		queue:   make(chan notification.PunchEvent, cfg.QueueSize),
		stopCh:  make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Name()
	}
	slog.Info("notification dispatcher started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize, "sinks", names)

	return d
}

func (d *dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.queue:
			d.metrics.SetQueueDepth(len(d.queue))
			d.deliver(id, event)
		case <-d.stopCh:
			// Drain what was queued before Stop
			for {
				select {
				case event := <-d.queue:
					d.deliver(id, event)
				default:
					d.metrics.SetQueueDepth(0)
					return
				}
			}
		}
	}
}

// deliver sends one event to every sink concurrently. Sink errors are logged
// and counted; they never stop delivery to the other sinks.
func (d *dispatcher) deliver(worker int, event notification.PunchEvent) {
	if len(d.sinks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	var g errgroup.Group
	for _, sink := range d.sinks {
		g.Go(func() error {
			err := sink.Send(ctx, event)
			d.metrics.NotificationSent(sink.Name(), err)
			if err != nil {
				slog.Error("failed to deliver punch notification",
					"worker", worker,
					"sink", sink.Name(),
					"user_id", event.UserID,
					"record_id", event.Punch.ID,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (d *dispatcher) Notify(event notification.PunchEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.metrics.NotificationDropped()
		return notification.ErrDispatcherStopped
	}

	select {
	case d.queue <- event:
		d.metrics.SetQueueDepth(len(d.queue))
		return nil
	default:
		d.metrics.NotificationDropped()
		slog.Warn("notification queue full, dropping punch event",
			"user_id", event.UserID,
			"record_id", event.Punch.ID,
		)
		return notification.ErrQueueFull
	}
}

func (d *dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
		close(d.stopCh)
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
