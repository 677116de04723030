// Command stripsim runs the controller on a workstation. The strip is drawn
// in the terminal, the buttons are typed on stdin ("1" for mode, "2" for
// color, "q" to quit) and the status display is logged.
package main

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/coreman2200/funtimes-ledstrip/internal/app"
	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/preview"
	"github.com/coreman2200/funtimes-ledstrip/internal/status"
)

// pressFor is how long a typed press holds the pin low.
const pressFor = 150 * time.Millisecond

func main() {
	configPath := pflag.String("config", "", "optional config.yaml")
	envFile := pflag.String("env-file", "", "optional dotenv file with LEDSTRIP_* overrides")
	previewAddr := pflag.String("preview-addr", "", "serve /ws, /diag and /health on this address")
	quiet := pflag.BoolP("quiet", "q", false, "do not draw the strip in the terminal")
	flags := config.NewFlags(pflag.CommandLine)
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}).With().Timestamp().Logger()

	diags := diagnostics.NewCollector(64)
	rep := diagnostics.Multi{diags, diagnostics.Log{Logger: logger.With().Str("component", "diag").Logger()}}

	cfg, err := config.Load(*configPath)
	if err != nil {
		rep.Report(diagnostics.ConfigFailure(*configPath, err))
	}
	if err := cfg.ApplyEnv(*envFile); err != nil {
		logger.Warn().Err(err).Msg("environment overrides ignored")
	}
	if err := flags.Apply(cfg); err != nil {
		logger.Fatal().Err(err).Msg("bad flags")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		logger = logger.Level(lvl)
	}

	if err := run(cfg, diags, rep, logger, *previewAddr, *quiet); err != nil {
		logger.Fatal().Err(err).Msg("simulator stopped")
	}
}

func run(cfg *config.Config, diags *diagnostics.Collector, rep diagnostics.Reporter, logger zerolog.Logger, previewAddr string, quiet bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var drv led.Driver = led.Null{}
	if !quiet {
		drv = led.NewConsole(cfg.LED.Count, os.Stdout)
	}

	var hub *preview.Hub
	if previewAddr != "" {
		hub = preview.NewHub(cfg.LED.Count, diags, logger.With().Str("component", "preview").Logger())
		drv = hub.Tee(drv)
	}
	defer drv.Close()

	modePin := &gpiotest.Pin{N: cfg.Buttons.ModePin, L: gpio.High}
	colorPin := &gpiotest.Pin{N: cfg.Buttons.ColorPin, L: gpio.High}

	hw := app.Hardware{Strip: drv, ModePin: modePin, ColorPin: colorPin}
	if cfg.Display.Enabled {
		hw.Display = status.NewLog(logger.With().Str("component", "display").Logger())
		hw.DisplayName = "log"
	}
	c, err := app.InitCore(hw, app.OptionsFrom(cfg), clock.Real{}, rep, logger)
	if err != nil {
		return err
	}

	go readButtons(os.Stdin, modePin, colorPin, stop, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return c.Run(gctx)
	})
	if hub != nil {
		srv := &http.Server{
			Addr:         previewAddr,
			Handler:      hub.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		g.Go(func() error { return hub.Run(gctx) })
		g.Go(func() error {
			logger.Info().Str("addr", previewAddr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return srv.Close()
		})
	}

	logger.Info().
		Int("leds", cfg.LED.Count).
		Bool("display", c.Panel.Present()).
		Msg("simulator running; type 1 (mode), 2 (color) or q")
	return g.Wait()
}

// readButtons turns stdin lines into short presses.
func readButtons(f *os.File, mode, color *gpiotest.Pin, quit func(), logger zerolog.Logger) {
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var p *gpiotest.Pin
		switch strings.TrimSpace(sc.Text()) {
		case "1":
			p = mode
		case "2":
			p = color
		case "q":
			quit()
			return
		default:
			logger.Warn().Str("input", sc.Text()).Msg("type 1, 2 or q")
			continue
		}
		_ = p.Out(gpio.Low)
		time.Sleep(pressFor)
		_ = p.Out(gpio.High)
	}
}
