// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/adxpbx/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPCMReader serves fixed integer samples like the go-audio decoders.
type mockPCMReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestNewIntSource_BitDepth(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 1, SampleRate: 8000}

	for _, depth := range []int{16, 24, 32} {
		_, err := newIntSource("wav", &mockPCMReader{}, format, depth)
		assert.NoError(t, err, "depth %d", depth)
	}

	for _, depth := range []int{0, 8, 12, 64} {
		_, err := newIntSource("wav", &mockPCMReader{}, format, depth)
		assert.ErrorIs(t, err, ErrUnsupportedBitDepth, "depth %d", depth)
	}

	_, err := newIntSource("aiff", &mockPCMReader{}, nil, 16)
	assert.Error(t, err)
}

func TestIntSource_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		depth   int
		samples []int
		want    []float32
	}{
		{"16-bit", 16, []int{0, 16384, -32768, 32767}, []float32{0, 0.5, -1, 32767.0 / 32768}},
		{"24-bit", 24, []int{0, 4194304, -8388608}, []float32{0, 0.5, -1}},
		{"32-bit", 32, []int{1 << 30, -(1 << 31)}, []float32{0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newIntSource("wav", &mockPCMReader{samples: tt.samples},
				&goaudio.Format{NumChannels: 1, SampleRate: 48000}, tt.depth)
			require.NoError(t, err)

			assert.Equal(t, 48000, src.SampleRate())
			assert.Equal(t, 1, src.Channels())

			dst := make([]float32, 16)
			n, err := src.ReadSamples(dst)
			assert.ErrorIs(t, err, io.EOF, "a short read ends the stream")
			require.Equal(t, len(tt.want), n)
			assert.InDeltaSlice(t, tt.want, dst[:n], 1e-6)
		})
	}
}

func TestIntSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := make([]int, 10)
	for i := range samples {
		samples[i] = i * 100
	}
	src, err := newIntSource("aiff", &mockPCMReader{samples: samples},
		&goaudio.Format{NumChannels: 2, SampleRate: 22050}, 16)
	require.NoError(t, err)

	_, err = src.ReadSamples(make([]float32, 1))
	assert.ErrorIs(t, err, audio.ErrInvalidDstSize)

	n, err := src.ReadSamples(nil)
	assert.Zero(t, n)
	assert.NoError(t, err)

	// odd tails are trimmed to whole frames
	dst := make([]float32, 5)
	n, err = src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	total := n
	for {
		n, err = src.ReadSamples(dst)
		total += n
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 10, total)
}

func TestIntSource_ReadError(t *testing.T) {
	t.Parallel()

	broken := errors.New("bad chunk")
	src, err := newIntSource("wav", &mockPCMReader{err: broken},
		&goaudio.Format{NumChannels: 1, SampleRate: 8000}, 16)
	require.NoError(t, err)

	_, err = src.ReadSamples(make([]float32, 8))
	assert.ErrorIs(t, err, broken)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("RIFF"))
	rs, err := seekable(br)
	require.NoError(t, err)
	assert.Same(t, br, rs)

	rs, err = seekable(iotest.OneByteReader(bytes.NewReader([]byte("FORM"))))
	require.NoError(t, err)
	data, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, []byte("FORM"), data)

	_, err = seekable(iotest.ErrReader(io.ErrClosedPipe))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
