// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/utils"
)

// pcmReader is the part of the go-audio wav and aiff decoders used here.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// intSource adapts a go-audio integer PCM decoder to audio.Source.
type intSource struct {
	kind     string
	dec      pcmReader
	format   goaudio.Format
	bitDepth int
	buf      *goaudio.IntBuffer
}

func newIntSource(kind string, dec pcmReader, format *goaudio.Format, bitDepth int) (*intSource, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %s with %d bits", ErrUnsupportedBitDepth, kind, bitDepth)
	}
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("%s: missing channel layout", kind)
	}

	return &intSource{
		kind:     kind,
		dec:      dec,
		format:   *format,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 4096),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *intSource) SampleRate() int { return s.format.SampleRate }
func (s *intSource) Channels() int   { return s.format.NumChannels }
func (s *intSource) BufSize() int    { return cap(s.buf.Data) }
func (s *intSource) Close() error    { return nil }

func (s *intSource) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.format.NumChannels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = utils.Int16ToFloat32(utils.ScaleToInt16(s.buf.Data[i], s.bitDepth))
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("reading %s samples: %w", s.kind, err)
	}
	// A short read means the data chunk is exhausted.
	if n < want {
		return n, io.EOF
	}
	return n, nil
}

// seekable returns r itself when it can seek, and an in-memory copy
// otherwise. The go-audio decoders walk chunks with Seek.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
