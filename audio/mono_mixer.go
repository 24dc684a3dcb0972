// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes a Source to one channel by averaging each frame.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixed source: %w", err)
	}
	return nil
}

// ReadSamples fills dst with mono samples, one per source frame.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if len(dst) == 0 {
		return 0, nil
	}
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	frames := n / channels

	scale := 1 / float32(channels)
	for f := range frames {
		var sum float32
		for _, v := range tmp[f*channels : (f+1)*channels] {
			sum += v
		}
		dst[f] = sum * scale
	}

	return frames, err
}
