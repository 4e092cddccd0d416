// Package events delivers navigation notifications to the data layer.
package events

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultBufferSize is used when NewBus is given a non-positive size.
const DefaultBufferSize = 64

// EventType identifies the kind of event.
type EventType string

const (
	// EventInvalidate asks subscribers to refetch the listing of a path.
	EventInvalidate EventType = "invalidate"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// InvalidationEvent says the cached listing for Path is stale.
type InvalidationEvent struct {
	Path string
	Time time.Time
}

func (e InvalidationEvent) Type() EventType      { return EventInvalidate }
func (e InvalidationEvent) Timestamp() time.Time { return e.Time }

// Bus fans events out to subscriber channels. Publishing never blocks: an
// event for a subscriber whose buffer is full is dropped and counted.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
	bufferSize  int
	closed      bool
	dropped     atomic.Int64
}

// NewBus creates a bus whose subscriber channels hold bufferSize events.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{bufferSize: bufferSize}
}

// Subscribe returns a channel receiving every published event. On a closed
// bus the returned channel is already closed.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes ch.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers[i] = b.subscribers[len(b.subscribers)-1]
			b.subscribers = b.subscribers[:len(b.subscribers)-1]
			close(sub)
			return
		}
	}
}

// Publish sends event to all subscribers.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			if n := b.dropped.Inc(); n%100 == 1 {
				logrus.Warnf("events: subscriber buffer full, %d events dropped so far", n)
			}
		}
	}
}

// Invalidate publishes an InvalidationEvent for path.
func (b *Bus) Invalidate(path string) {
	logrus.Debugf("events: invalidate %s", path)
	b.Publish(InvalidationEvent{Path: path, Time: time.Now()})
}

// Dropped returns how many events were dropped because of full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}
