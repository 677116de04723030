package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

func TestStartsAtAllOnRed(t *testing.T) {
	s := New(66)
	assert.Equal(t, model.AllOn, s.Effect)
	assert.Equal(t, "Red", s.Color().Name)
}

func TestNextEffectWrapsAfterTen(t *testing.T) {
	s := New(66)
	for i := 1; i <= model.EffectCount; i++ {
		got := s.NextEffect()
		assert.Equal(t, model.EffectKind(i%model.EffectCount), got)
	}
	assert.Equal(t, model.AllOn, s.Effect)
}

func TestNextColorWrapsAfterNine(t *testing.T) {
	s := New(66)
	for i := 1; i <= 9; i++ {
		assert.Equal(t, i%9, s.NextColor())
	}
	assert.Equal(t, 0, s.ColorIndex)
}

var TestStatusScreens = []struct {
	Effect     model.EffectKind
	ColorIndex int
	Expect     [3]string
}{
	{model.AllOn, 0, [3]string{"Mode: All On", "Color: Red", "LEDs: 66"}},
	{model.ColorWipe, 6, [3]string{"Mode: Color Wipe", "Color: Orange", "LEDs: 66"}},
	{model.RainbowCycle, 3, [3]string{"Mode: Rainbow", "Color: Rainbow", "LEDs: 66"}},
	{model.Aurora, 0, [3]string{"Mode: Aurora", "Color: Aurora", "LEDs: 66"}},
	{model.Fire, 8, [3]string{"Mode: Fire", "Color: Fire", "LEDs: 66"}},
	{model.Breathing, 7, [3]string{"Mode: Breathing", "Color: Purple", "LEDs: 66"}},
	{model.Off, 2, [3]string{"Mode: Off", "", "Status: OFF"}},
}

func TestStatusLines(t *testing.T) {
	for _, v := range TestStatusScreens {
		t.Run(v.Effect.String(), func(t *testing.T) {
			s := &State{Effect: v.Effect, ColorIndex: v.ColorIndex, LEDCount: 66}
			assert.Equal(t, v.Expect, s.StatusLines())
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Sixteen chars ok", Truncate("Sixteen chars ok"))
	assert.Equal(t, "Seventeen cha...", Truncate("Seventeen chars!!"))
	assert.Len(t, Truncate("a very long effect name indeed"), 16)
}
