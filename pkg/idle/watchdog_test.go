package idle

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatchdog(t *testing.T) (*Watchdog, *FakeClock, *int32) {
	t.Helper()
	clock := NewFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	var fired int32
	w := New(clock, DefaultTimeout, func() { atomic.AddInt32(&fired, 1) })
	return w, clock, &fired
}

func TestWatchdogExpiresWithoutActivity(t *testing.T) {
	w, clock, fired := newTestWatchdog(t)

	clock.Advance(14*time.Minute + 59*time.Second)
	assert.Equal(t, int32(0), atomic.LoadInt32(fired))

	clock.Advance(time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))
	assert.True(t, w.Expired())
}

func TestWatchdogTouchRestartsTimer(t *testing.T) {
	w, clock, fired := newTestWatchdog(t)

	clock.Advance(14 * time.Minute)
	require.NoError(t, w.Touch(KeyDown))
	assert.Equal(t, clock.Now().Add(DefaultTimeout), w.Deadline())

	clock.Advance(time.Minute)
	assert.Equal(t, int32(0), atomic.LoadInt32(fired), "first deadline must not fire after a touch")

	clock.Advance(14 * time.Minute)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))
}

func TestWatchdogFiresOnce(t *testing.T) {
	w, clock, fired := newTestWatchdog(t)

	clock.Advance(time.Hour)
	clock.Advance(time.Hour)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))
	assert.ErrorIs(t, w.Touch(Scroll), ErrExpired)
}

func TestWatchdogStop(t *testing.T) {
	w, clock, fired := newTestWatchdog(t)

	w.Stop()
	clock.Advance(time.Hour)
	assert.Equal(t, int32(0), atomic.LoadInt32(fired))
	assert.ErrorIs(t, w.Touch(MouseMove), ErrExpired)
}

func TestWatchdogRejectsUnknownEvents(t *testing.T) {
	w, clock, fired := newTestWatchdog(t)

	clock.Advance(10 * time.Minute)
	assert.ErrorIs(t, w.Touch(Event("focus")), ErrUnknownEvent)

	clock.Advance(5 * time.Minute)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))
}

func TestEventValid(t *testing.T) {
	for _, e := range Events {
		assert.True(t, e.Valid(), string(e))
	}
	assert.False(t, Event("click").Valid())
}
