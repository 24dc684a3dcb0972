// SPDX-License-Identifier: EPL-2.0

// Package adxpbx converts between CRI ADX audio and 16-bit PCM.
//
// The codec itself lives in formats/adx; this package wires it to the
// rest of the audio stack.
//
// # Supported Formats
//
// ADX can be produced from any source the formats/pcmfile registry
// decodes:
//   - WAV (PCM 16/24/32-bit)
//   - AIFF (PCM 16/24/32-bit)
//   - MP3
//   - Ogg Vorbis
//   - headerless 16-bit big-endian PCM (.i16be)
//
// Decoded ADX is written back out as 16-bit PCM WAV or raw i16be.
//
// # Quick Start
//
// Decode an ADX file to interleaved 16-bit samples:
//
//	f, _ := os.Open("voice.adx")
//	pcm, header, err := adxpbx.DecodeToPCM16(f)
//	// pcm holds header.ChannelCount interleaved channels
//
// Encode any audio.Source to Standard ADX:
//
//	src, _ := pcmfile.Open("voice.wav")
//	out, _ := os.Create("voice.adx")
//	frames, err := adxpbx.EncodeSource(out, src, 4096)
//
// The encoder keeps the source sample rate and channel count. Conform
// resamples and mixes down beforehand:
//
//	frames, err := adxpbx.EncodeSource(out, adxpbx.Conform(src, 22050, true), 4096)
//
// ResampleToMono16 collects a source as mono 16-bit PCM at a given rate.
//
// # Command Line
//
// cmd/adxconv exposes the same pipelines as info, decode and encode
// subcommands.
package adxpbx
