package led

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

func TestStripFlushWritesStagedPixels(t *testing.T) {
	rec := &Recorder{}
	s := NewStrip(rec, 4)

	s.SetPixel(0, model.RGB{R: 1, G: 2, B: 3})
	s.SetPixel(3, model.RGB{R: 9})
	s.SetPixel(4, model.RGB{R: 255}) // out of range
	s.SetPixel(-1, model.RGB{R: 255})
	s.Flush()

	require.Equal(t, 1, rec.Count())
	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0, 0, 9, 0, 0}, rec.Frames[0])
	assert.Equal(t, model.RGB{R: 9}, s.Pixel(3))
	assert.Equal(t, model.Black, s.Pixel(7))

	s.Fill(model.RGB{G: 5})
	s.Flush()
	for _, c := range rec.Last() {
		assert.Equal(t, model.RGB{G: 5}, c)
	}

	s.Clear()
	s.Flush()
	assert.Equal(t, make([]byte, 12), rec.Frames[2])
}

func TestStripKeepsFirstError(t *testing.T) {
	rec := &Recorder{FailAfter: 1}
	s := NewStrip(rec, 2)

	s.Flush()
	require.NoError(t, s.Err())

	s.Flush()
	s.Flush()
	assert.True(t, errors.Is(s.Err(), ErrInjected))
	assert.Equal(t, 1, rec.Count())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "pwm", Count: 3})
	assert.True(t, errors.Is(err, ErrUnknownDriver))

	d, err := Open(Options{Driver: "null", Count: 3})
	require.NoError(t, err)
	assert.IsType(t, Null{}, d)
	assert.NoError(t, d.Write(make([]byte, 9)))
}

func TestSPIWritesEncodedFrame(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := NewSPIPort(spitest.NewRecordRaw(&buf), 3, 2500*physic.KiloHertz)
	require.NoError(t, err)

	before := buf.Len()
	require.NoError(t, d.Write([]byte{255, 0, 0, 0, 255, 0, 0, 0, 255}))
	// Three wire bytes per color byte.
	assert.GreaterOrEqual(t, buf.Len()-before, 3*3*3)

	assert.Error(t, d.Write([]byte{1, 2, 3}))
}

func TestSPIRejectsEmptyStrip(t *testing.T) {
	buf := bytes.Buffer{}
	_, err := NewSPIPort(spitest.NewRecordRaw(&buf), 0, 0)
	assert.Error(t, err)
}
