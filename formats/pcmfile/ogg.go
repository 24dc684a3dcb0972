// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"fmt"
	"io"

	"github.com/ik5/adxpbx/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader used here.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type oggSource struct {
	dec      oggReader
	channels int
}

func (s *oggSource) SampleRate() int { return s.dec.SampleRate() }
func (s *oggSource) Channels() int   { return s.channels }
func (s *oggSource) Close() error    { return nil }
func (s *oggSource) BufSize() int    { return 4096 }

func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	// Read counts interleaved values, already in [-1, 1].
	n, err := s.dec.Read(dst[:want])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	return n, err
}

// OggDecoder decodes Ogg Vorbis streams.
type OggDecoder struct{}

func (OggDecoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis: %w", err)
	}

	return &oggSource{dec: dec, channels: dec.Channels()}, nil
}
