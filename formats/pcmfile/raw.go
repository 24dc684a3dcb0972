// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/internal/bitstream"
	"github.com/ik5/adxpbx/utils"
)

// Layout assumed for .i16be files opened through the registry.
const (
	DefaultRawRate     = 44100
	DefaultRawChannels = 2
)

// RawDecoder reads headerless interleaved 16-bit big-endian PCM (.i16be).
// The data carries no layout, so the decoder supplies it.
type RawDecoder struct {
	SampleRate int
	Channels   int
}

func (d RawDecoder) Decode(r io.Reader) (audio.Source, error) {
	if d.SampleRate < 1 || d.Channels < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrRawLayout, d.Channels, d.SampleRate)
	}

	return &rawSource{
		br:       bitstream.NewReader(bufio.NewReader(r)),
		rate:     d.SampleRate,
		channels: d.Channels,
		frame:    make([]float32, d.Channels),
	}, nil
}

type rawSource struct {
	br       *bitstream.Reader
	rate     int
	channels int
	frame    []float32
}

func (s *rawSource) SampleRate() int { return s.rate }
func (s *rawSource) Channels() int   { return s.channels }
func (s *rawSource) BufSize() int    { return 4096 }
func (s *rawSource) Close() error    { return nil }

// ReadSamples decodes whole frames; a trailing partial frame is dropped.
func (s *rawSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) {
		for c := range s.channels {
			v, err := s.br.Read(16)
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return n, io.EOF
			}
			if err != nil {
				return n, fmt.Errorf("reading i16be sample: %w", err)
			}
			s.frame[c] = utils.Int16ToFloat32(int16(v))
		}
		n += copy(dst[n:], s.frame)
	}

	return n, nil
}

// WriteRaw16BE drains src into w as interleaved 16-bit big-endian PCM and
// returns the number of frames written. bufferSize is the read size in
// samples.
func WriteRaw16BE(w io.Writer, src audio.Source, bufferSize int) (int, error) {
	channels := src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%w: %d channels", ErrRawLayout, channels)
	}
	if bufferSize < channels {
		bufferSize = max(src.BufSize(), channels)
	}
	bufferSize -= bufferSize % channels

	bw := bufio.NewWriter(w)
	out := bitstream.NewWriter(bw)
	samples := make([]float32, bufferSize)

	frames := 0
	for {
		n, err := src.ReadSamples(samples)
		n -= n % channels
		for _, v := range samples[:n] {
			if werr := out.WriteUint16(uint16(utils.Float32ToInt16(v))); werr != nil {
				return frames, fmt.Errorf("writing i16be samples: %w", werr)
			}
		}
		frames += n / channels

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frames, err
		}
	}

	if err := bw.Flush(); err != nil {
		return frames, fmt.Errorf("flushing i16be output: %w", err)
	}
	return frames, nil
}
