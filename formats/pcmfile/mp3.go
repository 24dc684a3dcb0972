// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	mp3Channels   = 2
	mp3FrameBytes = mp3Channels * 2
)

// mp3Reader is the part of gomp3.Decoder used here.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec mp3Reader
	buf []byte
	// carry holds the bytes of a frame split across reads
	carry []byte
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) Close() error    { return nil }
func (s *mp3Source) BufSize() int    { return cap(s.buf) / 2 }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%mp3Channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	need := want * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	filled := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(s.buf[filled:])
	filled += n

	// Only whole frames are returned; a split frame waits for the next read.
	usable := filled - filled%mp3FrameBytes
	samples := usable / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}
	s.carry = append(s.carry, s.buf[usable:filled]...)

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
	if err == io.EOF {
		s.carry = s.carry[:0]
		return samples, io.EOF
	}
	return samples, nil
}

// MP3Decoder decodes MPEG-1/2 Layer III streams.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3: %w", err)
	}

	return &mp3Source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
