// Package idle implements a restartable one-shot inactivity timer.
package idle

import (
	"errors"
	"sync"
	"time"
)

// DefaultTimeout is the console's idle timeout.
const DefaultTimeout = 15 * time.Minute

var (
	ErrUnknownEvent = errors.New("idle: unknown activity event")
	ErrExpired      = errors.New("idle: watchdog already expired")
)

// Event is a user-activity signal reported by the console.
type Event string

const (
	MouseMove  Event = "mousemove"
	KeyDown    Event = "keydown"
	MouseDown  Event = "mousedown"
	TouchStart Event = "touchstart"
	Scroll     Event = "scroll"
)

// Events lists the activity events that restart the timer.
var Events = []Event{MouseMove, KeyDown, MouseDown, TouchStart, Scroll}

// Valid reports whether e restarts the timer.
func (e Event) Valid() bool {
	for _, ev := range Events {
		if ev == e {
			return true
		}
	}
	return false
}

// Timer is the subset of *time.Timer the watchdog needs.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can drive expiry.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock is backed by the time package.
var RealClock Clock = realClock{}

// Watchdog fires onExpire once when no activity is seen for timeout.
// Each Touch cancels the pending timer and arms a new one; a generation
// counter discards firings of timers that were already replaced.
type Watchdog struct {
	mu         sync.Mutex
	clock      Clock
	timeout    time.Duration
	onExpire   func()
	timer      Timer
	generation uint64
	deadline   time.Time
	expired    bool
	stopped    bool
}

// New arms a watchdog. A non-positive timeout uses DefaultTimeout.
func New(clock Clock, timeout time.Duration, onExpire func()) *Watchdog {
	if clock == nil {
		clock = RealClock
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	w := &Watchdog{clock: clock, timeout: timeout, onExpire: onExpire}
	w.mu.Lock()
	w.arm()
	w.mu.Unlock()
	return w
}

func (w *Watchdog) arm() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.generation++
	gen := w.generation
	w.deadline = w.clock.Now().Add(w.timeout)
	w.timer = w.clock.AfterFunc(w.timeout, func() { w.fire(gen) })
}

func (w *Watchdog) fire(gen uint64) {
	w.mu.Lock()
	if gen != w.generation || w.expired || w.stopped {
		w.mu.Unlock()
		return
	}
	w.expired = true
	cb := w.onExpire
	w.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Touch restarts the timer for a qualifying event.
func (w *Watchdog) Touch(e Event) error {
	if !e.Valid() {
		return ErrUnknownEvent
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expired || w.stopped {
		return ErrExpired
	}
	w.arm()
	return nil
}

// Stop cancels the watchdog without firing it.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.generation++
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Deadline returns when the watchdog fires if no activity arrives.
func (w *Watchdog) Deadline() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deadline
}

// Expired reports whether the watchdog has fired.
func (w *Watchdog) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expired
}
