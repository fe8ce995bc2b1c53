package audit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Event struct {
	ShopSlug string    `json:"shopSlug"`
	ActorID  string    `json:"actorId,omitempty"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entityId,omitempty"`
	Metadata any       `json:"metadata,omitempty"`
	At       time.Time `json:"at"`
}

// Sink persists or forwards events. Sinks are called from the dispatcher
// worker only, one event at a time.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	log   logrus.FieldLogger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

func NewDispatcher(log logrus.FieldLogger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		log:   log,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := sink.Write(ctx, ev); err != nil {
				d.log.WithError(err).
					WithField("action", ev.Action).
					WithField("shop", ev.ShopSlug).
					Warn("audit sink write failed")
			}
			cancel()
		}
	}
}

// Dispatch enqueues ev without blocking. When the queue is full the event
// is dropped: auditing never fails a request.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	select {
	case d.queue <- ev:
	default:
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
