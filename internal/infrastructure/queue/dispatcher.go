// Package queue delivers session transitions to subscribers.
package queue

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

const defaultBuffer = 32

// Dispatcher fans session events out to subscribers. Each subscriber owns a
// buffered channel drained by its own worker goroutine, so listeners see
// events in publish order and a slow listener never blocks the publisher.
// When a subscriber's buffer is full the event is dropped for it.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int
	log    zerolog.Logger
}

type subscriber struct {
	ch   chan domain.SessionEvent
	fn   ports.SessionListener
	done chan struct{}
}

// NewDispatcher creates a Dispatcher whose subscribers buffer up to buffer
// events. If buffer <= 0, defaultBuffer is used.
func NewDispatcher(buffer int, log zerolog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Dispatcher{
		subs:   make(map[uint64]*subscriber),
		buffer: buffer,
		log:    log.With().Str("component", "session_dispatcher").Logger(),
	}
}

// Subscribe registers fn and starts its worker. The returned function removes
// the subscription; events already queued are still delivered.
func (d *Dispatcher) Subscribe(fn ports.SessionListener) func() {
	s := &subscriber{
		ch:   make(chan domain.SessionEvent, d.buffer),
		fn:   fn,
		done: make(chan struct{}),
	}

	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = s
	d.mu.Unlock()

	go d.runWorker(id, s)

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

// Publish enqueues event for every subscriber without blocking.
func (d *Dispatcher) Publish(event domain.SessionEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for id, s := range d.subs {
		select {
		case s.ch <- event:
		default:
			metrics.SessionEventsDroppedTotal.Inc()
			d.log.Warn().
				Uint64("subscriber", id).
				Str("reason", string(event.Reason)).
				Msg("subscriber buffer full, event dropped")
		}
	}
}

// Len returns the number of active subscribers.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}

// Close removes every subscription and waits for the workers to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	subs := lo.Values(d.subs)
	for _, s := range subs {
		close(s.ch)
	}
	d.subs = make(map[uint64]*subscriber)
	d.mu.Unlock()

	for _, s := range subs {
		<-s.done
	}
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.subs[id]; ok {
		delete(d.subs, id)
		close(s.ch)
	}
}

func (d *Dispatcher) runWorker(id uint64, s *subscriber) {
	defer close(s.done)
	for event := range s.ch {
		d.deliver(id, s, event)
	}
}

func (d *Dispatcher) deliver(id uint64, s *subscriber, event domain.SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Uint64("subscriber", id).
				Msg("session listener panicked")
		}
	}()
	s.fn(event)
}
