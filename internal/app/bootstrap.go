package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/input"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/mode"
	"github.com/coreman2200/funtimes-ledstrip/internal/power"
	"github.com/coreman2200/funtimes-ledstrip/internal/status"
)

// Hardware is everything the controller talks to.
type Hardware struct {
	Strip    led.Driver
	ModePin  gpio.PinIn
	ColorPin gpio.PinIn
	// Display is nil when no panel was detected.
	Display     status.Display
	DisplayName string
}

// Options are the timing and sizing knobs.
type Options struct {
	LEDCount int
	Debounce time.Duration
	Timeout  time.Duration
	Splash   time.Duration
	Tick     time.Duration
	Slice    time.Duration
	Fire     effect.FireParams
	Seed     int64
}

// OptionsFrom picks the relevant settings out of cfg.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		LEDCount: cfg.LED.Count,
		Debounce: cfg.Buttons.Debounce(),
		Timeout:  cfg.Display.Timeout(),
		Splash:   cfg.Display.Splash(),
		Tick:     cfg.Loop.Tick(),
		Slice:    cfg.Loop.Slice(),
		Fire:     effect.FireParams{Cooling: cfg.Fire.Cooling, Sparking: cfg.Fire.Sparking},
		Seed:     cfg.Fire.Seed,
	}
}

// InitCore wires the controller. Nothing is drawn until Start.
func InitCore(hw Hardware, opt Options, clk clock.Clock, rep diagnostics.Reporter, logger zerolog.Logger) (*Conductor, error) {
	if hw.Strip == nil {
		return nil, fmt.Errorf("no LED driver")
	}
	if hw.ModePin == nil || hw.ColorPin == nil {
		return nil, fmt.Errorf("both button pins are required")
	}
	if clk == nil {
		clk = clock.Real{}
	}

	strip := led.NewStrip(hw.Strip, opt.LEDCount)
	pacer := &effect.Pacer{Clock: clk, Slice: opt.Slice}
	eng, err := effect.NewEngine(strip, pacer, opt.Fire, rand.New(rand.NewSource(opt.Seed)))
	if err != nil {
		return nil, err
	}

	panel := status.NewPanel(hw.Display, hw.DisplayName, rep, logger.With().Str("component", "status").Logger())
	return &Conductor{
		Clock:  clk,
		Eng:    eng,
		In:     input.NewSampler(hw.ModePin, hw.ColorPin, opt.Debounce),
		Power:  power.NewMonitor(opt.Timeout, panel.Present(), clk.Now()),
		Panel:  panel,
		State:  mode.New(opt.LEDCount),
		Log:    logger.With().Str("component", "app").Logger(),
		Diag:   rep,
		Tick:   opt.Tick,
		Splash: opt.Splash,
	}, nil
}
