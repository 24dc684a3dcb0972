// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"

	"github.com/ik5/adxpbx/internal/audiotest"
)

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"stereo", 2, 0.5},
		{"quad", 4, 1.5},
		{"five", 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// channel c carries the value c
			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_ int, ch int) float32 { return float32(ch) })
			m := NewMonoMixer(src)
			if m.Channels() != 1 || m.SampleRate() != 8000 {
				t.Fatalf("MonoMixer = %d Hz, %d channels; want 8000, 1", m.SampleRate(), m.Channels())
			}

			got := drainSource(t, m, 33)
			if len(got) != 100 {
				t.Fatalf("got %d samples, want 100", len(got))
			}
			for i, v := range got {
				if math.Abs(float64(v-tt.want)) > 1e-6 {
					t.Fatalf("sample %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_PassesMonoThrough(t *testing.T) {
	t.Parallel()

	want := drainSource(t, audiotest.NewSineSource(8000, 1, 50, 300), 16)
	got := drainSource(t, NewMonoMixer(audiotest.NewSineSource(8000, 1, 50, 300)), 16)

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMonoMixer_AfterResampler(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 441, func(_ int, ch int) float32 { return 0.5 - float32(ch) })
	m := NewMonoMixer(NewResampler(src, 11025))

	got := drainSource(t, m, 64)
	if n := len(got); n < 100 || n > 112 {
		t.Errorf("got %d samples, want about 110", n)
	}
	for i, v := range got {
		if math.Abs(float64(v)) > 1e-6 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
