// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/adxpbx/utils"
)

// smoothing is the one-pole low-pass weight applied to source frames when
// the output rate is lower than the input rate.
const smoothing = 0.5

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation. The channel count is preserved.
type Resampler struct {
	src      Source
	rate     int
	channels int

	// step is the number of source frames per output frame.
	step float64
	pos  float64

	// window holds four consecutive source frames; output is taken
	// between window[1] and window[2]. live marks frames backed by data.
	window [4][]float32
	live   [4]bool

	primed  bool
	srcDone bool
	scratch []float32

	lowpass bool
	warm    bool
	state   []float32
}

// NewResampler wraps src so it produces dstRate Hz. A dstRate below one
// keeps the source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	if dstRate < 1 {
		dstRate = src.SampleRate()
	}

	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		channels: channels,
		step:     step,
		scratch:  make([]float32, channels),
		lowpass:  step > 1,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampled source: %w", err)
	}
	return nil
}

// pull reads one source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	if r.srcDone {
		return false, nil
	}

	for {
		n, err := r.src.ReadSamples(r.scratch)
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("reading source frame: %w", err)
		}
		if err == io.EOF {
			r.srcDone = true
		}

		if n == r.channels {
			copy(frame, r.scratch)
			r.filter(frame)
			return true, nil
		}
		if r.srcDone {
			return false, nil
		}
	}
}

func (r *Resampler) filter(frame []float32) {
	if !r.lowpass {
		return
	}
	if !r.warm {
		copy(r.state, frame)
		r.warm = true
		return
	}
	for c := range frame {
		frame[c] = smoothing*frame[c] + (1-smoothing)*r.state[c]
		r.state[c] = frame[c]
	}
}

// fill loads window[i], repeating the previous frame past the end.
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.window[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[i], r.window[i-1])
	}
	r.live[i] = ok
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil || !ok {
		return err
	}
	r.live[1] = true
	copy(r.window[0], r.window[1])

	for i := 2; i < len(r.window); i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}
	return nil
}

// advance slides the window forward by one source frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.live[:], r.live[1:])

	return r.fill(3)
}

// ReadSamples fills dst with interleaved samples at the output rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		// the last source frame is emitted only when it lands exactly
		if !r.live[1] || (!r.live[2] && r.pos > 0) {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
