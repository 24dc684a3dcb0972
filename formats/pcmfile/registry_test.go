// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/adxpbx/formats/adx"
	"github.com/ik5/adxpbx/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	t.Parallel()

	reg := Formats()
	assert.Equal(t, []string{"adx", "aif", "aiff", "i16be", "mp3", "ogg", "wav"}, reg.Formats())

	d, ok := reg.Get("ADX")
	require.True(t, ok)
	assert.IsType(t, adx.Decoder{}, d)

	_, ok = reg.Get("flac")
	assert.False(t, ok)
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"song.wav":           "wav",
		"/tmp/Voice.ADX":     "adx",
		"archive.tar.ogg":    "ogg",
		"no_extension":       "",
		"dir.with.dots/file": "",
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatOf(path), path)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, err := Open("track.flac")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Open(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bogus := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not riff data, just some bytes here"), 0o644))
	_, err = Open(bogus)
	assert.ErrorIs(t, err, ErrNotWavFile)
}

func TestOpen_WAV(t *testing.T) {
	t.Parallel()

	path, _ := writeWAVFile(t, audiotest.NewSineSource(16000, 1, 100, 1000))

	src, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, 16000, src.SampleRate())
	assert.Len(t, readAll(t, src, 64), 100)
	assert.NoError(t, src.Close())
}

func TestOpen_ADX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.adx")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc, err := adx.NewStandardEncoder(f, adx.Spec{Channels: 2, SampleRate: 32000})
	require.NoError(t, err)
	require.NoError(t, enc.Encode(audiotest.SineFrames(2, 70, 32000, 300, 5000)))
	require.NoError(t, enc.Finish())
	require.NoError(t, f.Close())

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 32000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	assert.Len(t, readAll(t, src, 64), 140)
}
