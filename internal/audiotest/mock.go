// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic audio fixtures for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates float32 audio for pipelines that consume an
// audio.Source. It implements that interface without importing it.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a mock source producing totalSamples frames, each
// sample given by waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// ConstantFrames returns n frames whose every sample equals value.
func ConstantFrames(channels, n int, value int16) [][]int16 {
	frames := make([][]int16, n)
	for i := range frames {
		frames[i] = make([]int16, channels)
		for ch := range frames[i] {
			frames[i][ch] = value
		}
	}
	return frames
}

// SineFrames returns n frames of a sine at frequency Hz with the given
// peak amplitude. Channel k is phase shifted by k quarter turns.
func SineFrames(channels, n, sampleRate int, frequency float64, amplitude int16) [][]int16 {
	frames := make([][]int16, n)
	for i := range frames {
		frames[i] = make([]int16, channels)
		t := float64(i) / float64(sampleRate)
		for ch := range frames[i] {
			phase := 2*math.Pi*frequency*t + float64(ch)*math.Pi/2
			frames[i][ch] = int16(math.Round(float64(amplitude) * math.Sin(phase)))
		}
	}
	return frames
}

// Interleave flattens frames into one slice.
func Interleave(frames [][]int16) []int16 {
	var out []int16
	for _, f := range frames {
		out = append(out, f...)
	}
	return out
}
