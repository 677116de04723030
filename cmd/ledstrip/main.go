package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ledstrip/internal/app"
	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstrip/internal/input"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/selftest"
	"github.com/coreman2200/funtimes-ledstrip/internal/status"
)

func main() {
	// ---- Flags (override config.yaml and the environment) ----
	configPath := pflag.String("config", "config.yaml", "path to config.yaml")
	envFile := pflag.String("env-file", ".env", "dotenv file with LEDSTRIP_* overrides")
	selfTest := pflag.String("selftest", "", "play a wiring pattern first: index_sweep | rgb_channels")
	flags := config.NewFlags(pflag.CommandLine)
	pflag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	// ---- Config: defaults, file, env, flags ----
	rep := diagnostics.Log{Logger: log.With().Str("component", "diag").Logger()}
	cfg, err := config.Load(*configPath)
	if err != nil {
		rep.Report(diagnostics.ConfigFailure(*configPath, err))
	}
	if err := cfg.ApplyEnv(*envFile); err != nil {
		log.Warn().Err(err).Msg("environment overrides ignored")
	}
	if err := flags.Apply(cfg); err != nil {
		log.Fatal().Err(err).Msg("bad flags")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := run(cfg, *selfTest, rep); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("stopped")
	}
	log.Info().Msg("shut down")
}

// run owns every opened device so that each is closed on the way out,
// whatever the outcome.
func run(cfg *config.Config, selfTest string, rep diagnostics.Reporter) error {
	kind, err := selftest.ParseKind(selfTest)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	// ---- Strip ----
	drv, selected, err := openStrip(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Warn().Err(err).Msg("closing strip")
		}
	}()
	if kind != selftest.None {
		log.Info().Str("pattern", string(kind)).Msg("running self-test")
		if err := selftest.Run(led.NewStrip(drv, cfg.LED.Count), kind, clock.Real{}, 250*time.Millisecond); err != nil {
			return fmt.Errorf("self-test: %w", err)
		}
	}

	// ---- Buttons ----
	modePin, err := input.OpenPin(cfg.Buttons.ModePin)
	if err != nil {
		return fmt.Errorf("mode button: %w", err)
	}
	colorPin, err := input.OpenPin(cfg.Buttons.ColorPin)
	if err != nil {
		return fmt.Errorf("color button: %w", err)
	}

	// ---- Status display (optional) ----
	hw := app.Hardware{Strip: drv, ModePin: modePin, ColorPin: colorPin, DisplayName: "ssd1306"}
	if cfg.Display.Enabled {
		oled, closeBus, err := status.Open(cfg.Display.Bus, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			rep.Report(diagnostics.ProbeFailure("ssd1306", err, map[string]any{
				"bus": cfg.Display.Bus, "width": cfg.Display.Width, "height": cfg.Display.Height,
			}))
		} else {
			hw.Display = oled
			defer closeBus()
		}
	}

	c, err := app.InitCore(hw, app.OptionsFrom(cfg), clock.Real{}, rep, log.Logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	log.Info().
		Str("driver", selected).
		Int("leds", cfg.LED.Count).
		Str("mode_pin", cfg.Buttons.ModePin).
		Str("color_pin", cfg.Buttons.ColorPin).
		Bool("display", c.Panel.Present()).
		Stringer("effect", c.State.Effect).
		Str("color", c.State.Color().Name).
		Msg("LED strip controller starting")

	// ---- Run until signalled ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return c.Run(ctx)
}

// openStrip opens the configured LED driver. In auto mode a missing SPI port
// falls back to drawing the strip on the console.
func openStrip(cfg *config.Config) (led.Driver, string, error) {
	o := led.Options{
		Driver:  cfg.LED.Driver,
		SPIPort: cfg.LED.SPIPort,
		Count:   cfg.LED.Count,
		Freq:    physic.Frequency(cfg.LED.FreqKHz) * physic.KiloHertz,
		Console: os.Stdout,
	}
	if o.Driver == "auto" {
		o.Driver = "spi"
		drv, err := led.Open(o)
		if err == nil {
			return drv, "spi", nil
		}
		log.Warn().Err(err).
			Str("driver", "spi").
			Str("port", o.SPIPort).
			Msg("SPI init failed; falling back to console")
		o.Driver = "console"
	}
	drv, err := led.Open(o)
	if err != nil {
		return nil, "", fmt.Errorf("LED driver %s: %w", o.Driver, err)
	}
	return drv, o.Driver, nil
}
