// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/utils"
)

// source adapts a StandardDecoder to audio.Source.
type source struct {
	dec *StandardDecoder
	buf []int16
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return cap(s.buf) }
func (s *source) Close() error    { return nil }

// Format describes the decoded PCM in go-audio terms.
func (s *source) Format() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: s.dec.Channels(),
		SampleRate:  s.dec.SampleRate(),
	}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	want := len(dst) - len(dst)%channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf) < want {
		s.buf = make([]int16, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.ReadFrames(s.buf)
	for i := range n {
		dst[i] = utils.Int16ToFloat32(s.buf[i])
	}

	return n, err
}

// Decoder opens Standard-encoded ADX streams as audio.Source values.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// the copyright check needs to seek
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading adx data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec, err := Open(rs)
	if err != nil {
		return nil, err
	}

	return &source{
		dec: dec,
		buf: make([]int16, dec.samplesPerBlock*dec.channels),
	}, nil
}

// Open reads the header from rs and returns a decoder for its payload.
// Only the Standard encoding is accepted.
func Open(rs io.ReadSeeker) (*StandardDecoder, error) {
	h, err := ReadHeader(rs)
	if err != nil {
		return nil, err
	}
	return NewStandardDecoder(rs, h)
}
