// Package diagnostics carries structured reports about hardware trouble that
// the controller survives.
package diagnostics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

const (
	CodeDisplayProbe = "DISPLAY.PROBE"
	CodeDisplayWrite = "DISPLAY.WRITE"
	CodeStripWrite   = "STRIP.WRITE"
	CodeConfigLoad   = "CONFIG.LOAD"
)

type Diagnostic struct {
	Time           time.Time      `json:"time"`
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// ProbeFailure reports an optional device that did not answer at startup.
func ProbeFailure(device string, err error, evidence map[string]any) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeDisplayProbe,
		Summary:  device + " not detected, continuing without it",
		Detail:   errString(err),
		LikelyCauses: []string{
			"display not wired or powered",
			"wrong I2C bus or address",
		},
		SuggestedFixes: []string{
			"check SDA/SCL wiring",
			"run i2cdetect on the configured bus",
		},
		Evidence: evidence,
	}
}

// WriteFailure reports a failed transfer to an attached device.
func WriteFailure(device string, err error, evidence map[string]any) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeDisplayWrite,
		Summary:  device + " write failed",
		Detail:   errString(err),
		LikelyCauses: []string{
			"loose connection",
			"bus contention",
		},
		Evidence: evidence,
	}
}

// StripFailure reports the LED strip write that stopped the controller.
func StripFailure(err error, evidence map[string]any) Diagnostic {
	return Diagnostic{
		Severity: Err,
		Code:     CodeStripWrite,
		Summary:  "LED strip write failed, stopping",
		Detail:   errString(err),
		LikelyCauses: []string{
			"SPI port closed or unavailable",
			"strip driver lost power",
		},
		SuggestedFixes: []string{
			"check that SPI is enabled and the port exists",
		},
		Evidence: evidence,
	}
}

// ConfigFailure reports a config file that was ignored in favor of the
// defaults.
func ConfigFailure(path string, err error) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeConfigLoad,
		Summary:  "config not loaded, using defaults",
		Detail:   errString(err),
		SuggestedFixes: []string{
			"fix or remove " + path,
		},
		Evidence: map[string]any{"path": path},
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Reporter receives diagnostics as they happen.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Log writes each diagnostic as a structured log line.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Report(d Diagnostic) {
	var ev *zerolog.Event
	switch d.Severity {
	case Err:
		ev = l.Logger.Error()
	case Warn:
		ev = l.Logger.Warn()
	default:
		ev = l.Logger.Info()
	}
	ev = ev.Str("code", d.Code)
	if d.Detail != "" {
		ev = ev.Str("detail", d.Detail)
	}
	if len(d.Evidence) > 0 {
		ev = ev.Interface("evidence", d.Evidence)
	}
	ev.Msg(d.Summary)
}

// Collector keeps the most recent diagnostics for later inspection.
type Collector struct {
	mu    sync.Mutex
	limit int
	items []Diagnostic
}

// NewCollector keeps up to limit entries, dropping the oldest.
func NewCollector(limit int) *Collector {
	if limit <= 0 {
		limit = 32
	}
	return &Collector{limit: limit}
}

func (c *Collector) Report(d Diagnostic) {
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
	if len(c.items) > c.limit {
		c.items = c.items[len(c.items)-c.limit:]
	}
}

// Snapshot returns a copy of the retained diagnostics, oldest first.
func (c *Collector) Snapshot() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Multi fans a diagnostic out to several reporters.
type Multi []Reporter

func (m Multi) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
