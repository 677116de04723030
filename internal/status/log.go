package status

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Log is a Display that keeps its text in memory and logs each flushed
// screen. It stands in for the panel on a workstation.
type Log struct {
	log     zerolog.Logger
	pending map[int]string
	shown   []string
	on      bool
	flushes int
}

// NewLog returns a powered-on Log display.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{log: logger, pending: map[int]string{}, on: true}
}

func (l *Log) Clear() {
	clear(l.pending)
}

// DrawText places s on row y. x only indents the text.
func (l *Log) DrawText(s string, x, y int) {
	l.pending[y] = strings.Repeat(" ", max(0, x/7)) + s
}

func (l *Log) Flush() error {
	rows := make([]int, 0, len(l.pending))
	for y := range l.pending {
		rows = append(rows, y)
	}
	sort.Ints(rows)
	l.shown = l.shown[:0]
	for _, y := range rows {
		l.shown = append(l.shown, l.pending[y])
	}
	l.flushes++
	if l.on {
		l.log.Info().Strs("lines", l.shown).Msg("display")
	}
	return nil
}

func (l *Log) PowerOff() error {
	l.on = false
	l.log.Info().Msg("display off")
	return nil
}

func (l *Log) PowerOn() error {
	l.on = true
	l.log.Info().Msg("display on")
	return nil
}

// Lines returns the text of the last flushed screen, top to bottom.
func (l *Log) Lines() []string { return append([]string(nil), l.shown...) }

// On reports the power state.
func (l *Log) On() bool { return l.on }

// Flushes counts completed screen updates.
func (l *Log) Flushes() int { return l.flushes }
