// SPDX-License-Identifier: EPL-2.0

package adxpbx

import (
	"fmt"
	"io"

	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/formats/adx"
	"github.com/ik5/adxpbx/utils"
)

// DecodeToPCM16 reads a Standard-encoded ADX stream and collects every
// sample as interleaved 16-bit PCM.
//
// The header is returned alongside the samples so callers can recover the
// sample rate and channel count. A payload that ends before its end marker
// is reported as io.ErrUnexpectedEOF together with the samples decoded so
// far.
func DecodeToPCM16(rs io.ReadSeeker) ([]int16, *adx.Header, error) {
	dec, err := adx.Open(rs)
	if err != nil {
		return nil, nil, err
	}
	h := dec.Header()

	// TotalSamples is a hint only; a zero count still decodes to the marker.
	pcm := make([]int16, 0, int(h.TotalSamples)*dec.Channels())
	buf := make([]int16, h.SamplesPerBlock()*dec.Channels())

	for {
		n, err := dec.ReadFrames(buf)
		pcm = append(pcm, buf[:n]...)

		if err == io.EOF {
			return pcm, &h, nil
		}
		if err != nil {
			return pcm, &h, fmt.Errorf("decoding adx: %w", err)
		}
	}
}

// EncodeSource drains src into ws as Standard-encoded ADX and returns the
// number of frames written. src keeps its sample rate and channel count.
//
// bufferSize is the read size in samples; values smaller than one frame
// fall back to src.BufSize().
func EncodeSource(ws io.WriteSeeker, src audio.Source, bufferSize int) (int, error) {
	channels := src.Channels()
	if channels < 1 || src.SampleRate() < 1 {
		return 0, fmt.Errorf("%w: %d channels at %d Hz", adx.ErrInvalidSpec, channels, src.SampleRate())
	}

	enc, err := adx.NewStandardEncoder(ws, adx.Spec{
		Channels:   channels,
		SampleRate: uint32(src.SampleRate()),
	})
	if err != nil {
		return 0, err
	}

	if bufferSize < channels {
		bufferSize = max(src.BufSize(), channels)
	}
	bufferSize -= bufferSize % channels

	buf := make([]float32, bufferSize)
	pcm16 := make([]int16, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			// Sources return whole frames; a stray tail is dropped.
			n -= n % channels
			for i := range n {
				pcm16[i] = utils.Float32ToInt16(buf[i])
			}
			if werr := enc.WriteInterleaved(pcm16[:n]); werr != nil {
				return enc.SamplesEncoded(), fmt.Errorf("encoding adx: %w", werr)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return enc.SamplesEncoded(), fmt.Errorf("reading source: %w", err)
		}
	}

	if err := enc.Finish(); err != nil {
		return enc.SamplesEncoded(), fmt.Errorf("finishing adx: %w", err)
	}
	return enc.SamplesEncoded(), nil
}
