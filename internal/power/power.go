// Package power tracks user activity and decides when the status display
// sleeps and wakes.
package power

import "time"

// DefaultTimeout is the idle time before the display is put to sleep.
const DefaultTimeout = 30 * time.Second

// Transition is what the owner must do to the display.
type Transition int

const (
	NoChange Transition = iota
	Sleep
	Wake
)

func (t Transition) String() string {
	switch t {
	case Sleep:
		return "sleep"
	case Wake:
		return "wake"
	}
	return "none"
}

// Monitor is Awake until timeout passes without activity. A press while
// Asleep only queues a wake-up; the owner sees it as Wake on the next Tick.
//
// A disabled Monitor never sleeps and never swallows presses.
type Monitor struct {
	timeout time.Duration
	enabled bool

	last   time.Time
	asleep bool
	wake   bool
}

// NewMonitor returns an awake monitor whose activity timer starts at now.
func NewMonitor(timeout time.Duration, enabled bool, now time.Time) *Monitor {
	return &Monitor{timeout: timeout, enabled: enabled, last: now}
}

// Enabled reports whether the monitor manages a display at all.
func (m *Monitor) Enabled() bool { return m.enabled }

// Asleep reports whether the display is currently off.
func (m *Monitor) Asleep() bool { return m.asleep }

// Reset restarts the activity timer.
func (m *Monitor) Reset(now time.Time) { m.last = now }

// NoteActivity records a button press. It returns true when the press was
// consumed to wake the display and must not be acted on otherwise.
func (m *Monitor) NoteActivity(now time.Time) bool {
	if m.enabled && m.asleep {
		m.wake = true
		return true
	}
	m.last = now
	return false
}

// Due reports whether Tick would return a transition at now.
func (m *Monitor) Due(now time.Time) bool {
	if !m.enabled {
		return false
	}
	if m.asleep {
		return m.wake
	}
	return now.Sub(m.last) > m.timeout
}

// Tick applies a pending transition. Sleep and Wake are each returned once
// per occurrence.
func (m *Monitor) Tick(now time.Time) Transition {
	if !m.Due(now) {
		return NoChange
	}
	if m.asleep {
		m.asleep = false
		m.wake = false
		m.last = now
		return Wake
	}
	m.asleep = true
	return Sleep
}
