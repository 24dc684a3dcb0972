// SPDX-License-Identifier: EPL-2.0

// Package pcmfile reads and writes the uncompressed and compressed audio
// files that ADX is converted from and to.
//
// Every decoder returns an audio.Source producing interleaved float32
// samples in [-1, 1]:
//
//   - WAV, PCM 16/24/32-bit, via github.com/go-audio/wav
//   - AIFF, PCM 16/24/32-bit, via github.com/go-audio/aiff
//   - MP3 via github.com/hajimehoshi/go-mp3 (always stereo)
//   - Ogg Vorbis via github.com/jfreymuth/oggvorbis
//   - ADX (Standard encoding) via formats/adx
//   - headerless 16-bit big-endian PCM (.i16be), stereo 44100 Hz unless
//     opened with OpenRaw
//
// Formats returns a registry keyed by file extension, and Open picks the
// decoder from a path:
//
//	src, err := pcmfile.Open("music.wav")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// WriteWAV drains a Source into a 16-bit PCM WAV file and WriteRaw16BE
// into headerless i16be.
package pcmfile
