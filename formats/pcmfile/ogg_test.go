// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/adxpbx/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOggReader serves interleaved float samples.
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestOggSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := &oggSource{dec: &mockOggReader{sampleRate: 48000, channels: 2, samples: samples}, channels: 2}

	assert.Equal(t, 48000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	assert.Positive(t, src.BufSize())

	assert.Equal(t, samples, readAll(t, src, 5))
}

func TestOggSource_DstSize(t *testing.T) {
	t.Parallel()

	src := &oggSource{dec: &mockOggReader{sampleRate: 8000, channels: 3}, channels: 3}

	_, err := src.ReadSamples(make([]float32, 2))
	assert.ErrorIs(t, err, audio.ErrInvalidDstSize)

	n, err := src.ReadSamples(nil)
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestOggSource_Error(t *testing.T) {
	t.Parallel()

	broken := errors.New("bad packet")
	src := &oggSource{dec: &mockOggReader{sampleRate: 8000, channels: 1, err: broken}, channels: 1}

	_, err := src.ReadSamples(make([]float32, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, broken)
}

func TestOggDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := OggDecoder{}.Decode(bytes.NewReader([]byte("OggS but not really")))
	assert.Error(t, err)

	_, err = OggDecoder{}.Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}
