// Package audit carries the fire-and-forget notifications emitted on state changes.
package audit

import (
	"fmt"
	"sync"
	"time"
)

// Level is the severity of an audit event.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
)

// Event is a single audit notification.
type Event struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
}

// Sink receives audit events. Implementations must not fail the caller.
type Sink interface {
	Emit(event Event)
}

// Infof emits an INFO event stamped with the current time.
func Infof(sink Sink, format string, args ...interface{}) {
	emit(sink, LevelInfo, format, args...)
}

// Warnf emits a WARNING event stamped with the current time.
func Warnf(sink Sink, format string, args ...interface{}) {
	emit(sink, LevelWarning, format, args...)
}

func emit(sink Sink, level Level, format string, args ...interface{}) {
	if sink == nil {
		return
	}
	sink.Emit(Event{Time: time.Now(), Level: level, Message: fmt.Sprintf(format, args...)})
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(Event) {}

// Recorder keeps events in memory. The zero value keeps every event; one
// built with NewRecorder keeps only the most recent limit events.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	next   int // oldest slot once the buffer is full
	events []Event
}

// NewRecorder returns a recorder holding at most limit events; older
// events are dropped first.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit <= 0 || len(r.events) < r.limit {
		r.events = append(r.events, event)
		return
	}
	r.events[r.next] = event
	r.next = (r.next + 1) % r.limit
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Messages returns just the message text of each recorded event.
func (r *Recorder) Messages() []string {
	events := r.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Message)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.next = 0
}

// Multi fans every event out to each sink in order.
type Multi []Sink

func (m Multi) Emit(event Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(event)
		}
	}
}
