// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"
)

// silentSource yields a fixed number of zero frames.
type silentSource struct {
	rate, channels, frames int
}

func (s *silentSource) SampleRate() int { return s.rate }
func (s *silentSource) Channels() int   { return s.channels }
func (s *silentSource) BufSize() int    { return 4096 }
func (s *silentSource) Close() error    { return nil }

func (s *silentSource) ReadSamples(dst []float32) (int, error) {
	if s.frames == 0 {
		return 0, io.EOF
	}
	n := min(len(dst)/s.channels, s.frames)
	clear(dst[:n*s.channels])
	s.frames -= n
	return n * s.channels, nil
}

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return &silentSource{rate: 44100, channels: 2, frames: 100}, nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "adx"}

	registry.Register("adx", decoder)

	got, ok := registry.Get("adx")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "adx"}

	registry.Register("ADX", decoder)

	for _, key := range []string{"adx", "ADX", "Adx"} {
		got, ok := registry.Get(key)
		if !ok || got != decoder {
			t.Errorf("Registry.Get(%q) = %v, %v; want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	adxDecoder := &mockDecoder{name: "adx"}
	wavDecoder := &mockDecoder{name: "wav"}

	registry.Register("adx", adxDecoder)
	registry.Register("wav", wavDecoder)
	registry.Register("broken", &failingDecoder{})

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"adx", adxDecoder, true},
		{"wav", wavDecoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Get(%q) returned wrong decoder", tt.format)
			}
		})
	}

	broken, _ := registry.Get("broken")
	if _, err := broken.Decode(nil); err == nil {
		t.Error("failingDecoder.Decode() error = nil, want error")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("adx", decoder1)
	registry.Register("adx", decoder2)

	got, _ := registry.Get("adx")
	if got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if got := registry.Formats(); len(got) != 0 {
		t.Errorf("Formats() on empty registry = %v, want empty", got)
	}

	for _, key := range []string{"wav", "ADX", "mp3", "aiff"} {
		registry.Register(key, &mockDecoder{name: key})
	}

	want := []string{"adx", "aiff", "mp3", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}

	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			_ = registry.Formats()
			done <- true
		}()
	}

	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestMockDecoder_SourceDrains(t *testing.T) {
	t.Parallel()

	src, err := (&mockDecoder{}).Decode(nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 64)
	total := 0
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 200 {
		t.Errorf("read %d samples, want 200", total)
	}
}

// BenchmarkRegistry_Get benchmarks retrieving decoders
func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("adx", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("adx")
	}
}
