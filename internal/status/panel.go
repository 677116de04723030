package status

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
)

// Panel wraps an optional Display. Without a display every method is a
// no-op, and write failures are reported and then ignored.
type Panel struct {
	d    Display
	name string
	rep  diagnostics.Reporter
	log  zerolog.Logger
}

// NewPanel wraps d, which may be nil.
func NewPanel(d Display, name string, rep diagnostics.Reporter, logger zerolog.Logger) *Panel {
	return &Panel{d: d, name: name, rep: rep, log: logger}
}

// Present reports whether a display is attached.
func (p *Panel) Present() bool { return p != nil && p.d != nil }

// Show draws lines at the standard row positions.
func (p *Panel) Show(lines [3]string) {
	if !p.Present() {
		return
	}
	p.d.Clear()
	for i, s := range lines {
		if s != "" {
			p.d.DrawText(s, 0, LineY[i])
		}
	}
	p.check("flush", p.d.Flush())
}

// Sleep blanks the screen and powers it off.
func (p *Panel) Sleep() {
	if !p.Present() {
		return
	}
	p.d.Clear()
	p.check("flush", p.d.Flush())
	p.check("power_off", p.d.PowerOff())
}

// Wake powers the screen on. The caller redraws.
func (p *Panel) Wake() {
	if !p.Present() {
		return
	}
	p.check("power_on", p.d.PowerOn())
}

// check reports err, if any.
func (p *Panel) check(op string, err error) {
	if err == nil {
		return
	}
	if p.rep != nil {
		p.rep.Report(diagnostics.WriteFailure(p.name, err, map[string]any{"op": op}))
	} else {
		p.log.Warn().Err(err).Str("op", op).Msg("display write failed")
	}
}
