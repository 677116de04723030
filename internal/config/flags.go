package config

import "github.com/spf13/pflag"

// Flags are the command-line overrides. Only flags that were set on the
// command line are applied, so they never mask the file or environment.
type Flags struct {
	fs *pflag.FlagSet

	driver   *string
	spiPort  *string
	count    *int
	freqKHz  *int
	modePin  *string
	colorPin *string
	debounce *int
	display  *bool
	bus      *string
	timeout  *int
	logLevel *string
	fireSeed *int64
	verbose  *bool
}

// NewFlags registers the overrides on fs. Defaults shown in help are the
// built-in ones.
func NewFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		fs:       fs,
		driver:   fs.String("driver", d.LED.Driver, "LED driver: spi | console | auto | null"),
		spiPort:  fs.String("spi-port", d.LED.SPIPort, "SPI port name, empty for the first"),
		count:    fs.IntP("count", "n", d.LED.Count, "number of LEDs on the strip"),
		freqKHz:  fs.Int("freq-khz", d.LED.FreqKHz, "SPI clock for the NRZ encoder (kHz)"),
		modePin:  fs.String("mode-pin", d.Buttons.ModePin, "GPIO of the effect button"),
		colorPin: fs.String("color-pin", d.Buttons.ColorPin, "GPIO of the color button"),
		debounce: fs.Int("debounce-ms", d.Buttons.DebounceMs, "minimum ms between presses"),
		display:  fs.Bool("display", d.Display.Enabled, "probe for the SSD1306 status display"),
		bus:      fs.String("i2c-bus", d.Display.Bus, "I2C bus of the display, empty for the first"),
		timeout:  fs.Int("display-timeout-ms", d.Display.TimeoutMs, "idle ms before the display sleeps"),
		logLevel: fs.String("log-level", d.Log.Level, "trace | debug | info | warn | error"),
		fireSeed: fs.Int64("fire-seed", d.Fire.Seed, "random seed for the fire effect"),
		verbose:  fs.BoolP("verbose", "v", false, "shorthand for --log-level=debug"),
	}
}

// Apply copies every flag that was set onto c.
func (f *Flags) Apply(c *Config) error {
	set := func(name string) bool { return f.fs.Changed(name) }
	if set("driver") {
		c.LED.Driver = *f.driver
	}
	if set("spi-port") {
		c.LED.SPIPort = *f.spiPort
	}
	if set("count") {
		c.LED.Count = *f.count
	}
	if set("freq-khz") {
		c.LED.FreqKHz = *f.freqKHz
	}
	if set("mode-pin") {
		c.Buttons.ModePin = *f.modePin
	}
	if set("color-pin") {
		c.Buttons.ColorPin = *f.colorPin
	}
	if set("debounce-ms") {
		c.Buttons.DebounceMs = *f.debounce
	}
	if set("display") {
		c.Display.Enabled = *f.display
	}
	if set("i2c-bus") {
		c.Display.Bus = *f.bus
	}
	if set("display-timeout-ms") {
		c.Display.TimeoutMs = *f.timeout
	}
	if set("log-level") {
		c.Log.Level = *f.logLevel
	}
	if set("fire-seed") {
		c.Fire.Seed = *f.fireSeed
	}
	if *f.verbose {
		c.Log.Level = "debug"
	}
	return c.Validate()
}
