package effect

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const stripLen = 66

var red = model.RGB{R: 255}

func never() bool { return false }

// after allows n yield checks to pass before asking to stop.
func after(n int) YieldFunc {
	calls := 0
	return func() bool {
		calls++
		return calls > n
	}
}

type rig struct {
	eng *Engine
	rec *led.Recorder
	clk *clock.Fake
}

func newRig(t *testing.T, n int) *rig {
	t.Helper()
	rec := &led.Recorder{}
	clk := clock.NewFake(time.Unix(0, 0))
	eng, err := NewEngine(led.NewStrip(rec, n), &Pacer{Clock: clk, Slice: DefaultSlice}, DefaultFire, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return &rig{eng: eng, rec: rec, clk: clk}
}

// start switches to k and forgets the blanking frame.
func (r *rig) start(k model.EffectKind) {
	r.eng.Switch(k)
	r.rec.Frames = nil
}

func lit(frame []model.RGB) []int {
	var idx []int
	for i, c := range frame {
		if c != model.Black {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestPacerHoldSlices(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	p := &Pacer{Clock: clk, Slice: 50 * time.Millisecond}

	polls := 0
	left, stopped := p.Hold(500*time.Millisecond, func() bool { polls++; return false })
	assert.False(t, stopped)
	assert.Zero(t, left)
	assert.Equal(t, 9, polls, "polled between slices, not after the last one")
	assert.Equal(t, 500*time.Millisecond, clk.Slept())

	left, stopped = p.Hold(500*time.Millisecond, after(2))
	assert.True(t, stopped)
	assert.Equal(t, 350*time.Millisecond, left)
	assert.Equal(t, 650*time.Millisecond, clk.Slept())
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	_, err := NewEngine(led.NewStrip(&led.Recorder{}, 0), &Pacer{Clock: clk}, DefaultFire, nil)
	assert.Error(t, err)
	_, err = NewEngine(led.NewStrip(&led.Recorder{}, 3), &Pacer{}, DefaultFire, nil)
	assert.Error(t, err)
}

func TestAllOnFillsDimmedColor(t *testing.T) {
	r := newRig(t, stripLen)
	r.start(model.AllOn)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	require.Equal(t, 1, r.rec.Count())
	for _, c := range r.rec.Last() {
		assert.Equal(t, model.RGB{R: 76}, c)
	}
	assert.Equal(t, 50*time.Millisecond, r.clk.Slept())
}

func TestOffKeepsStripDark(t *testing.T) {
	r := newRig(t, stripLen)
	r.start(model.Off)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	assert.Empty(t, lit(r.rec.Last()))
	assert.Equal(t, 100*time.Millisecond, r.clk.Slept())
}

func TestRainbowCycleRunsFullWheel(t *testing.T) {
	r := newRig(t, stripLen)
	r.start(model.RainbowCycle)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	assert.Equal(t, 255, r.rec.Count())
	assert.Equal(t, 2550*time.Millisecond, r.clk.Slept())

	first := led.Decode(r.rec.Frames[0])
	assert.Equal(t, model.Wheel(0).Dim(), first[0])
	assert.Equal(t, model.Wheel(uint8(10*256/stripLen)).Dim(), first[10])
}

func TestRainbowIgnoresColor(t *testing.T) {
	a, b := newRig(t, stripLen), newRig(t, stripLen)
	a.start(model.RainbowCycle)
	b.start(model.RainbowCycle)

	a.eng.Step(red, after(20))
	b.eng.Step(model.Palette[2].Color, after(20))

	if diff := cmp.Diff(a.rec.Frames, b.rec.Frames); diff != "" {
		t.Fatalf("rainbow output depends on color (-red +blue):\n%s", diff)
	}
}

func TestColorWipeFillsHoldsAndClears(t *testing.T) {
	const n = 8
	r := newRig(t, n)
	r.start(model.ColorWipe)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	require.Equal(t, 2*n, r.rec.Count())

	assert.Equal(t, []int{0}, lit(led.Decode(r.rec.Frames[0])))
	assert.Len(t, lit(led.Decode(r.rec.Frames[n-1])), n)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, lit(led.Decode(r.rec.Frames[n])))
	assert.Empty(t, lit(r.rec.Last()))
	assert.Equal(t, 2*n*50*time.Millisecond+500*time.Millisecond, r.clk.Slept())
}

func TestTheaterChaseMarchesEveryThird(t *testing.T) {
	const n = 9
	r := newRig(t, n)
	r.start(model.TheaterChase)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	require.Equal(t, 60, r.rec.Count())

	assert.Equal(t, []int{0, 3, 6}, lit(led.Decode(r.rec.Frames[0])))
	assert.Empty(t, lit(led.Decode(r.rec.Frames[1])))
	assert.Equal(t, []int{1, 4, 7}, lit(led.Decode(r.rec.Frames[2])))
	assert.Equal(t, []int{2, 5, 8}, lit(led.Decode(r.rec.Frames[4])))
	assert.Equal(t, []int{0, 3, 6}, lit(led.Decode(r.rec.Frames[6])))
}

func TestPulseEnvelope(t *testing.T) {
	assert.Equal(t, 0.0, pulseLevel(0))
	assert.Equal(t, 0.5, pulseLevel(50))
	assert.InDelta(t, 0.01, pulseLevel(99), 1e-9)
	assert.Equal(t, pulseLevel(49), pulseLevel(51))

	r := newRig(t, 4)
	r.start(model.Pulse)
	assert.Equal(t, Finished, r.eng.Step(model.RGB{R: 255, G: 255, B: 255}, never))
	require.Equal(t, 100, r.rec.Count())

	peak := 0
	for _, f := range r.rec.Frames {
		peak = max(peak, int(f[0]))
	}
	assert.Equal(t, 38, peak)
	assert.Equal(t, model.Black, led.Decode(r.rec.Frames[0])[0])
	assert.Equal(t, 2*time.Second, r.clk.Slept())
}

func TestRunningLightBounces(t *testing.T) {
	const n = 5
	r := newRig(t, n)
	r.start(model.RunningLight)

	assert.Equal(t, Finished, r.eng.Step(red, never))
	require.Equal(t, 2*n, r.rec.Count())

	var path []int
	for _, f := range r.rec.Frames {
		on := lit(led.Decode(f))
		require.Len(t, on, 1)
		path = append(path, on[0])
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 4, 3, 2, 1, 0}, path)
}

func TestYieldResumesWhereItStopped(t *testing.T) {
	const n = 12
	want := newRig(t, n)
	want.start(model.ColorWipe)
	require.Equal(t, Finished, want.eng.Step(red, never))

	got := newRig(t, n)
	got.start(model.ColorWipe)
	calls, steps := 0, 0
	everySeventh := func() bool {
		calls++
		return calls%7 == 0
	}
	for got.eng.Step(red, everySeventh) != Finished {
		steps++
		require.Less(t, steps, 100)
	}

	assert.Positive(t, steps)
	assert.Equal(t, want.rec.Frames, got.rec.Frames)
	assert.Equal(t, want.clk.Slept(), got.clk.Slept())
}

func TestYieldIsPolledWithinLongHold(t *testing.T) {
	const n = 3
	r := newRig(t, n)
	r.start(model.ColorWipe)

	// three frames light the strip, the fifth check lands inside the hold
	assert.Equal(t, Continues, r.eng.Step(red, after(4)))
	assert.Equal(t, n, r.rec.Count())
	assert.Equal(t, 3*50*time.Millisecond+50*time.Millisecond, r.clk.Slept())
}

func TestSwitchBlanksAndRewinds(t *testing.T) {
	r := newRig(t, stripLen)
	r.eng.Switch(model.AllOn)
	r.eng.Step(red, never)

	r.eng.Switch(model.RainbowCycle)
	assert.Empty(t, lit(r.rec.Last()), "switch flushes a dark strip")
	assert.Equal(t, model.RainbowCycle, r.eng.Active())

	r.eng.Step(red, after(30))
	r.eng.Switch(model.Off)
	r.start(model.RainbowCycle)
	assert.Equal(t, Finished, r.eng.Step(red, never))
	assert.Equal(t, 255, r.rec.Count(), "rainbow restarts from frame zero")
}

func TestSwitchOutOfRangeFallsBack(t *testing.T) {
	r := newRig(t, 3)
	r.eng.Switch(model.EffectKind(99))
	assert.Equal(t, model.AllOn, r.eng.Active())
	assert.Nil(t, r.eng.byKind(model.EffectKind(99)))
	assert.Equal(t, model.Fire, r.eng.byKind(model.Fire).Kind())
}

func TestUnboundedEffectsNeverFinish(t *testing.T) {
	for _, k := range []model.EffectKind{model.Aurora, model.Fire, model.Breathing} {
		t.Run(k.String(), func(t *testing.T) {
			r := newRig(t, stripLen)
			r.start(k)
			assert.Equal(t, Continues, r.eng.Step(red, after(40)))
			assert.Equal(t, 40, r.rec.Count())
		})
	}
}

func TestAuroraGradient(t *testing.T) {
	assert.Equal(t, model.RGB{G: 255, B: 80}, auroraPalette[0])
	assert.Equal(t, model.RGB{G: 180, B: 130}, auroraPalette[len(auroraPalette)-1])
	assert.Equal(t, auroraPalette[0], auroraAt(0, stripLen, 0))
	assert.Equal(t, auroraPalette[1], auroraAt(0, stripLen, 256))
	assert.Equal(t, auroraPalette[0], auroraAt(0, stripLen, len(auroraPalette)*256))

	r := newRig(t, stripLen)
	r.start(model.Aurora)
	r.eng.Step(red, after(1000))
	a := r.eng.byKind(model.Aurora).(*aurora)
	assert.Equal(t, 3000%(len(auroraPalette)*256), a.offset)

	a.Reset()
	assert.Zero(t, a.offset)
}

var TestHeatColors = []struct {
	Heat   int
	Expect model.RGB
}{
	{0, model.RGB{}},
	{30, model.RGB{R: 90}},
	{85, model.RGB{R: 255}},
	{86, model.RGB{R: 255, G: 3}},
	{170, model.RGB{R: 255, G: 255}},
	{171, model.RGB{R: 255, G: 255, B: 3}},
	{255, model.RGB{R: 255, G: 255, B: 255}},
}

func TestHeatColor(t *testing.T) {
	for _, v := range TestHeatColors {
		assert.Equal(t, v.Expect, heatColor(v.Heat), "heat %d", v.Heat)
	}
}

func TestFireHeatStaysInRange(t *testing.T) {
	params := []FireParams{DefaultFire, {Cooling: 0, Sparking: 256}, {Cooling: 5000, Sparking: 0}}
	for _, fp := range params {
		for seed := int64(1); seed <= 10; seed++ {
			f := newFire(&Pacer{}, stripLen, fp, rand.New(rand.NewSource(seed)))
			for frame := 0; frame < 500; frame++ {
				f.advance()
				for i, h := range f.heat {
					if h < 0 || h > 255 {
						t.Fatalf("params %+v seed %d frame %d: heat[%d]=%d", fp, seed, frame, i, h)
					}
				}
			}
		}
	}
}

func TestFireSparksNearBase(t *testing.T) {
	f := newFire(&Pacer{}, stripLen, FireParams{Cooling: 0, Sparking: 256}, rand.New(rand.NewSource(3)))
	f.advance()
	hot := 0
	for i, h := range f.heat {
		if h > 0 {
			hot++
			assert.LessOrEqual(t, i, 7)
			assert.GreaterOrEqual(t, h, 160)
		}
	}
	assert.Equal(t, 1, hot)

	f.Reset()
	for _, h := range f.heat {
		assert.Zero(t, h)
	}
}

func TestBreathingPhase(t *testing.T) {
	r := newRig(t, 2)
	r.start(model.Breathing)
	r.eng.Step(red, after(1))
	assert.Equal(t, model.RGB{R: 38}, r.rec.Last()[0])

	b := r.eng.byKind(model.Breathing).(*breathing)
	r.eng.Step(red, after(500))
	assert.LessOrEqual(t, b.phase, 2*math.Pi)
	assert.GreaterOrEqual(t, b.phase, 0.0)
}

func TestEngineCountsSteps(t *testing.T) {
	r := newRig(t, 3)
	r.start(model.AllOn)
	r.eng.Step(red, never)
	r.eng.Step(red, never)
	assert.Equal(t, uint64(2), r.eng.Last.Steps)
	assert.Equal(t, uint64(2), r.eng.Last.Finished)
}
