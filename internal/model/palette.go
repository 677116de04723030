package model

// NamedColor pairs a palette entry with the label shown on the status display.
type NamedColor struct {
	Name  string
	Color RGB
}

// Palette is the fixed set of colors selectable with the color button.
var Palette = []NamedColor{
	{"Red", RGB{255, 0, 0}},
	{"Green", RGB{0, 255, 0}},
	{"Blue", RGB{0, 0, 255}},
	{"Yellow", RGB{255, 255, 0}},
	{"Magenta", RGB{255, 0, 255}},
	{"Cyan", RGB{0, 255, 255}},
	{"Orange", RGB{255, 128, 0}},
	{"Purple", RGB{128, 0, 255}},
	{"White", RGB{255, 255, 255}},
}

// EffectKind enumerates the animations in button order.
type EffectKind uint8

const (
	AllOn EffectKind = iota
	RainbowCycle
	ColorWipe
	TheaterChase
	Pulse
	RunningLight
	Aurora
	Fire
	Breathing
	Off

	// EffectCount is the number of effects in the cycle.
	EffectCount = int(Off) + 1
)

var effectNames = [EffectCount]string{
	AllOn:        "All On",
	RainbowCycle: "Rainbow",
	ColorWipe:    "Color Wipe",
	TheaterChase: "Chase",
	Pulse:        "Pulse",
	RunningLight: "Runner",
	Aurora:       "Aurora",
	Fire:         "Fire",
	Breathing:    "Breathing",
	Off:          "Off",
}

// String returns the display name of the effect.
func (k EffectKind) String() string {
	if int(k) >= EffectCount {
		return "Unknown"
	}
	return effectNames[k]
}

// Next returns the following effect, wrapping after Off.
func (k EffectKind) Next() EffectKind {
	return EffectKind((int(k) + 1) % EffectCount)
}

// UsesColor reports whether the effect renders the selected palette color.
func (k EffectKind) UsesColor() bool {
	switch k {
	case RainbowCycle, Aurora, Fire, Off:
		return false
	}
	return true
}

// ColorLabel is the fixed label shown instead of a palette name for effects
// that ignore the selected color. Off has none.
func (k EffectKind) ColorLabel() string {
	switch k {
	case RainbowCycle:
		return "Rainbow"
	case Aurora:
		return "Aurora"
	case Fire:
		return "Fire"
	}
	return ""
}
