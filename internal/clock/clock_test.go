package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeSleepAdvances(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	f.Sleep(50 * time.Millisecond)
	f.Advance(time.Second)
	f.Sleep(10 * time.Millisecond)

	assert.Equal(t, start.Add(1060*time.Millisecond), f.Now())
	assert.Equal(t, 60*time.Millisecond, f.Slept())
}

func TestFakeHooksSeeNewTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	var seen []time.Duration
	f.OnAdvance(func(now time.Time) { seen = append(seen, now.Sub(start)) })

	f.Sleep(20 * time.Millisecond)
	f.Sleep(30 * time.Millisecond)

	assert.Equal(t, []time.Duration{20 * time.Millisecond, 50 * time.Millisecond}, seen)
}
