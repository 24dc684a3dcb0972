// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/formats/adx"
)

// Formats returns a registry with every supported decoder, keyed by file
// extension without the dot.
func Formats() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", WAVDecoder{})
	reg.Register("aiff", AIFFDecoder{})
	reg.Register("aif", AIFFDecoder{})
	reg.Register("mp3", MP3Decoder{})
	reg.Register("ogg", OggDecoder{})
	reg.Register("adx", adx.Decoder{})
	reg.Register("i16be", RawDecoder{SampleRate: DefaultRawRate, Channels: DefaultRawChannels})
	return reg
}

// FormatOf returns the registry key for path.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// fileSource closes the underlying file together with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// Open decodes the file at path with the decoder registered for its
// extension. Closing the returned Source closes the file.
func Open(path string) (audio.Source, error) {
	dec, ok := Formats().Get(FormatOf(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	return openWith(path, dec)
}

// OpenRaw opens headerless i16be PCM at path with the given layout.
func OpenRaw(path string, sampleRate, channels int) (audio.Source, error) {
	return openWith(path, RawDecoder{SampleRate: sampleRate, Channels: channels})
}

func openWith(path string, dec audio.Decoder) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}
