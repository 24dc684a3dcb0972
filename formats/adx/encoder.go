// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/adxpbx/internal/bitstream"
)

const (
	// encoder output layout
	encodedBlockSize   = 18
	encodedBitDepth    = 4
	encodedBlockDeltas = (encodedBlockSize - 2) * 8 / encodedBitDepth
)

// Spec configures a StandardEncoder.
type Spec struct {
	Channels   int
	SampleRate uint32
	// Loop is an opt-in extension. Left nil, the header carries no loop
	// info and the payload starts at DefaultDataOffset+4. When set, the
	// loop info is written into the Version3 header at LoopDataOffset.
	Loop *LoopInfo
}

// block accumulates the residuals of one channel.
type block struct {
	prev     int32
	prevPrev int32
	deltas   [encodedBlockDeltas]int32
	size     int
}

func (b *block) push(sample int16, c Coefficients) {
	b.deltas[b.size] = int32(sample) - c.Predict(b.prev, b.prevPrev)
	b.size++

	// History follows the input, not the reconstruction.
	b.prevPrev = b.prev
	b.prev = int32(sample)
}

func (b *block) full() bool { return b.size == encodedBlockDeltas }

// reset empties the residuals and keeps the predictor history.
func (b *block) reset() {
	b.deltas = [encodedBlockDeltas]int32{}
	b.size = 0
}

func (b *block) scale() int32 {
	var lo, hi int32
	for _, d := range b.deltas {
		lo = min(lo, d)
		hi = max(hi, d)
	}
	if lo == 0 && hi == 0 {
		return 0
	}
	return max(hi/7, lo/-8, 1)
}

func (b *block) writeTo(bw *bitstream.Writer) error {
	scale := b.scale()
	if scale == 0 {
		return bw.WriteZeros(encodedBlockSize)
	}

	if err := bw.WriteUint16(uint16(scale)); err != nil {
		return err
	}

	var packed [encodedBlockDeltas / 2]byte
	for i := range packed {
		hi := byte(b.deltas[2*i]/scale) & 0x0f
		lo := byte(b.deltas[2*i+1]/scale) & 0x0f
		packed[i] = hi<<4 | lo
	}
	return bw.WriteBytes(packed[:])
}

// StandardEncoder writes Standard-encoded ADX to a seekable stream.
// Frames are buffered until every channel block holds 32 residuals;
// Finish flushes the remainder and writes the header. It is not safe for
// concurrent use.
type StandardEncoder struct {
	ws     io.WriteSeeker
	bw     *bitstream.Writer
	spec   Spec
	coeffs Coefficients

	blocks   []block
	encoded  uint32
	finished bool
}

// NewStandardEncoder validates spec and skips past the header region of
// ws, which is written by Finish.
func NewStandardEncoder(ws io.WriteSeeker, spec Spec) (*StandardEncoder, error) {
	if spec.Channels < 1 || spec.Channels > 255 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidSpec, spec.Channels)
	}
	if spec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: zero sample rate", ErrInvalidSpec)
	}

	e := &StandardEncoder{
		ws:     ws,
		bw:     bitstream.NewWriter(ws),
		spec:   spec,
		coeffs: GenerateCoefficients(spec.SampleRate, DefaultHighpassFrequency),
		blocks: make([]block, spec.Channels),
	}

	if _, err := ws.Seek(e.header().PayloadOffset(), io.SeekStart); err != nil {
		return nil, fmt.Errorf("reserving adx header: %w", err)
	}

	return e, nil
}

func (e *StandardEncoder) header() *Header {
	h := &Header{
		Encoding:          EncodingStandard,
		BlockSize:         encodedBlockSize,
		SampleBitDepth:    encodedBitDepth,
		ChannelCount:      uint8(e.spec.Channels),
		SampleRate:        e.spec.SampleRate,
		TotalSamples:      e.encoded,
		HighpassFrequency: DefaultHighpassFrequency,
		Version:           Version3,
		DataOffset:        DefaultDataOffset,
	}
	if e.spec.Loop != nil {
		loop := *e.spec.Loop
		h.Loop = &loop
		h.DataOffset = LoopDataOffset
	}
	return h
}

// Channels reports the configured channel count.
func (e *StandardEncoder) Channels() int { return e.spec.Channels }

// SamplesEncoded reports how many frames have been accepted.
func (e *StandardEncoder) SamplesEncoded() int { return int(e.encoded) }

// Encode pushes frames in playback order.
func (e *StandardEncoder) Encode(frames [][]int16) error {
	for _, frame := range frames {
		if err := e.WriteFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

// WriteFrame pushes one frame holding a sample per channel.
func (e *StandardEncoder) WriteFrame(frame []int16) error {
	if e.finished {
		return ErrEncoderFinished
	}
	if len(frame) != len(e.blocks) {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(frame), len(e.blocks))
	}

	for ch := range e.blocks {
		e.blocks[ch].push(frame[ch], e.coeffs)
	}
	e.encoded++

	if e.blocks[0].full() {
		return e.flush()
	}
	return nil
}

// WriteInterleaved pushes interleaved samples; the length must be a
// multiple of the channel count.
func (e *StandardEncoder) WriteInterleaved(samples []int16) error {
	channels := len(e.blocks)
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrChannelMismatch, len(samples), channels)
	}
	for i := 0; i < len(samples); i += channels {
		if err := e.WriteFrame(samples[i : i+channels]); err != nil {
			return err
		}
	}
	return nil
}

// WriteIntBuffer pushes a go-audio buffer of 16-bit interleaved samples.
// Values outside the int16 range are clamped.
func (e *StandardEncoder) WriteIntBuffer(buf *goaudio.IntBuffer) error {
	if buf == nil {
		return nil
	}
	if buf.Format != nil && buf.Format.NumChannels != 0 && buf.Format.NumChannels != len(e.blocks) {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, buf.Format.NumChannels, len(e.blocks))
	}

	channels := len(e.blocks)
	if len(buf.Data)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrChannelMismatch, len(buf.Data), channels)
	}

	frame := make([]int16, channels)
	for i := 0; i < len(buf.Data); i += channels {
		for ch := range channels {
			frame[ch] = int16(max(min(buf.Data[i+ch], 32767), -32768))
		}
		if err := e.WriteFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func (e *StandardEncoder) flush() error {
	for ch := range e.blocks {
		if err := e.blocks[ch].writeTo(e.bw); err != nil {
			return fmt.Errorf("writing block for channel %d: %w", ch, err)
		}
		e.blocks[ch].reset()
	}
	return nil
}

// Finish flushes a partial block, writes the end marker and rewrites the
// header with the final sample count. The encoder rejects further input.
func (e *StandardEncoder) Finish() error {
	if e.finished {
		return ErrEncoderFinished
	}
	e.finished = true

	if e.blocks[0].size > 0 {
		if err := e.flush(); err != nil {
			return err
		}
	}

	if err := e.bw.WriteUint16(EndMarker); err != nil {
		return fmt.Errorf("writing end marker: %w", err)
	}
	if err := e.bw.WriteUint16(encodedBlockSize - 4); err != nil {
		return fmt.Errorf("writing end marker: %w", err)
	}
	if err := e.bw.WriteZeros(encodedBlockSize - 4); err != nil {
		return fmt.Errorf("writing end marker: %w", err)
	}

	if _, err := e.ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding for adx header: %w", err)
	}

	return WriteHeader(e.ws, e.header())
}
