// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"fmt"
	"io"

	"github.com/ik5/adxpbx/internal/bitstream"
	"github.com/ik5/adxpbx/utils"
)

type decoderState int

const (
	awaitingBlock decoderState = iota
	emittingSamples
	finished
)

// StandardDecoder reconstructs frames from a Standard-encoded payload.
// It is not safe for concurrent use.
type StandardDecoder struct {
	br     *bitstream.Reader
	header Header
	coeffs Coefficients

	channels        int
	samplesPerBlock int

	prev     []int32
	prevPrev []int32

	// block holds one decoded block, frame-interleaved.
	block   []int16
	pos     int
	emitted uint64
	state   decoderState
	err     error
}

// NewStandardDecoder returns a decoder reading payload blocks from r,
// which must be positioned right after the header.
func NewStandardDecoder(r io.Reader, h *Header) (*StandardDecoder, error) {
	if h.Encoding != EncodingStandard {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, h.Encoding)
	}
	if h.ChannelCount == 0 || h.SampleBitDepth == 0 || h.SampleBitDepth > 16 {
		return nil, fmt.Errorf("%w: %d channels, %d-bit samples", ErrInvalidLayout, h.ChannelCount, h.SampleBitDepth)
	}

	spb := h.SamplesPerBlock()
	if spb == 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidLayout, h.BlockSize)
	}

	channels := int(h.ChannelCount)

	return &StandardDecoder{
		br:              bitstream.NewReader(r),
		header:          *h,
		coeffs:          GenerateCoefficients(h.SampleRate, h.HighpassFrequency),
		channels:        channels,
		samplesPerBlock: spb,
		prev:            make([]int32, channels),
		prevPrev:        make([]int32, channels),
		block:           make([]int16, spb*channels),
	}, nil
}

func (d *StandardDecoder) Channels() int   { return d.channels }
func (d *StandardDecoder) SampleRate() int { return int(d.header.SampleRate) }

// Header returns a copy of the stream header.
func (d *StandardDecoder) Header() Header { return d.header }

// NextFrame decodes the next frame into a freshly allocated slice holding
// one sample per channel. io.EOF marks the end of the stream.
func (d *StandardDecoder) NextFrame() ([]int16, error) {
	frame := make([]int16, d.channels)
	n, err := d.ReadFrames(frame)
	if n == 0 {
		return nil, err
	}
	return frame, nil
}

// ReadFrames fills dst with whole interleaved frames and returns the
// number of int16 values written. When the stream ends it returns the
// frames decoded so far together with io.EOF.
func (d *StandardDecoder) ReadFrames(dst []int16) (int, error) {
	if len(dst)%d.channels != 0 {
		return 0, fmt.Errorf("%w: buffer of %d values for %d channels", ErrChannelMismatch, len(dst), d.channels)
	}

	written := 0
	for written < len(dst) {
		if d.state == emittingSamples && d.pos == len(d.block) {
			d.state = awaitingBlock
		}

		switch d.state {
		case finished:
			if d.err != nil {
				return written, d.err
			}
			return written, io.EOF
		case awaitingBlock:
			if err := d.decodeBlock(); err != nil {
				d.state = finished
				if err != io.EOF {
					d.err = err
				}
				continue
			}
			d.state = emittingSamples
		case emittingSamples:
			if total := d.header.TotalSamples; total > 0 && d.emitted >= uint64(total) {
				d.state = finished
				continue
			}
			copy(dst[written:written+d.channels], d.block[d.pos:d.pos+d.channels])
			d.pos += d.channels
			written += d.channels
			d.emitted++
		}
	}

	return written, nil
}

// decodeBlock decodes one block for every channel into d.block. It
// returns io.EOF when a scale field holds the end marker.
func (d *StandardDecoder) decodeBlock() error {
	bits := uint(d.header.SampleBitDepth)

	for ch := range d.channels {
		rawScale, err := d.br.Read(16)
		if err != nil {
			if err == io.EOF {
				// the payload ran out without an end marker
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("reading scale for channel %d: %w", ch, err)
		}
		if uint16(rawScale) == EndMarker {
			return io.EOF
		}

		scale := int32(rawScale)
		prev, prevPrev := d.prev[ch], d.prevPrev[ch]

		for i := range d.samplesPerBlock {
			prediction := d.coeffs.Predict(prev, prevPrev)

			nibble, err := d.br.ReadSigned(bits)
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return fmt.Errorf("reading sample %d of channel %d: %w", i, ch, err)
			}

			sample := utils.ClampInt16(int64(prediction) + int64(nibble)*int64(scale))

			prevPrev = prev
			prev = int32(sample)
			d.block[i*d.channels+ch] = sample
		}

		// channel blocks start on a byte boundary even when the
		// samples leave spare bits
		d.br.Align()
		d.prev[ch], d.prevPrev[ch] = prev, prevPrev
	}

	d.pos = 0
	return nil
}
