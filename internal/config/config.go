// Package config loads controller settings. Values are layered: built-in
// defaults, then the YAML file, then .env and LEDSTRIP_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the file.
const EnvPrefix = "LEDSTRIP_"

type LED struct {
	Driver  string `yaml:"driver"`   // "spi" | "console" | "auto" | "null"
	SPIPort string `yaml:"spi_port"` // e.g. /dev/spidev0.0, empty for the first port
	Count   int    `yaml:"count"`
	FreqKHz int    `yaml:"freq_khz"`
}

type Buttons struct {
	ModePin    string `yaml:"mode_pin"`
	ColorPin   string `yaml:"color_pin"`
	DebounceMs int    `yaml:"debounce_ms"`
}

type Display struct {
	Enabled   bool   `yaml:"enabled"`
	Bus       string `yaml:"i2c_bus"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TimeoutMs int    `yaml:"timeout_ms"`
	SplashMs  int    `yaml:"splash_ms"`
}

type Loop struct {
	TickMs  int `yaml:"tick_ms"`
	SliceMs int `yaml:"slice_ms"`
}

type Fire struct {
	Cooling  int   `yaml:"cooling"`
	Sparking int   `yaml:"sparking"`
	Seed     int64 `yaml:"seed"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	LED     LED     `yaml:"led"`
	Buttons Buttons `yaml:"buttons"`
	Display Display `yaml:"display"`
	Loop    Loop    `yaml:"loop"`
	Fire    Fire    `yaml:"fire"`
	Log     Log     `yaml:"log"`
}

// Default is the stock wiring: 66 LEDs on SPI, buttons on GPIO17 and GPIO27,
// a 128x32 SSD1306 on the first I2C bus.
func Default() *Config {
	return &Config{
		LED: LED{
			Driver:  "auto",
			Count:   66,
			FreqKHz: 2500,
		},
		Buttons: Buttons{
			ModePin:    "GPIO17",
			ColorPin:   "GPIO27",
			DebounceMs: 200,
		},
		Display: Display{
			Enabled:   true,
			Width:     128,
			Height:    32,
			TimeoutMs: 30000,
			SplashMs:  2000,
		},
		Loop: Loop{TickMs: 10, SliceMs: 50},
		Fire: Fire{Cooling: 10, Sparking: 120, Seed: 1},
		Log:  Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error. On any
// other failure the defaults are returned along with the error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv loads envFile (if present) into the process environment and then
// applies every LEDSTRIP_* variable. Variables already set in the
// environment win over the file. c is left untouched when any variable is
// malformed or the result does not validate.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return c.applyVars(os.LookupEnv)
}

func (c *Config) applyVars(lookup func(string) (string, bool)) error {
	next := *c
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}

	str("LED_DRIVER", &next.LED.Driver)
	str("SPI_PORT", &next.LED.SPIPort)
	num("LED_COUNT", &next.LED.Count)
	num("LED_FREQ_KHZ", &next.LED.FreqKHz)
	str("MODE_PIN", &next.Buttons.ModePin)
	str("COLOR_PIN", &next.Buttons.ColorPin)
	num("DEBOUNCE_MS", &next.Buttons.DebounceMs)
	str("I2C_BUS", &next.Display.Bus)
	num("DISPLAY_TIMEOUT_MS", &next.Display.TimeoutMs)
	str("LOG_LEVEL", &next.Log.Level)
	if v, ok := lookup(EnvPrefix + "DISPLAY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDISPLAY: %w", EnvPrefix, err))
		} else {
			next.Display.Enabled = b
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Validate rejects settings the controller cannot run with.
func (c *Config) Validate() error {
	switch c.LED.Driver {
	case "spi", "console", "auto", "null":
	default:
		return fmt.Errorf("led.driver %q: want spi, console, auto or null", c.LED.Driver)
	}
	if c.LED.Count <= 0 {
		return fmt.Errorf("led.count must be positive, got %d", c.LED.Count)
	}
	if c.Buttons.DebounceMs < 0 || c.Display.TimeoutMs < 0 {
		return errors.New("durations must not be negative")
	}
	if c.Loop.SliceMs <= 0 {
		return fmt.Errorf("loop.slice_ms must be positive, got %d", c.Loop.SliceMs)
	}
	return nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (b Buttons) Debounce() time.Duration { return ms(b.DebounceMs) }
func (d Display) Timeout() time.Duration  { return ms(d.TimeoutMs) }
func (d Display) Splash() time.Duration   { return ms(d.SplashMs) }
func (l Loop) Tick() time.Duration        { return ms(l.TickMs) }
func (l Loop) Slice() time.Duration       { return ms(l.SliceMs) }
