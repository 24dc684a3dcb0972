// SPDX-License-Identifier: EPL-2.0

// Package adx decodes and encodes CRI ADX audio, the block-based ADPCM
// format used by game asset pipelines.
//
// An ADX stream is a big-endian header followed by fixed-size blocks.
// Every block holds, per channel, a 16-bit scale and 32 packed 4-bit
// residuals. A two-tap fixed-point predictor, whose coefficients are
// derived from the sample rate and a highpass cutoff, supplies the
// expected next sample; the residual times the scale corrects it.
//
// # Supported Encodings
//
// The header recognizes Preset, Standard, Exponential and AHX streams.
// Only Standard is decoded and encoded; the others fail with
// ErrUnsupportedEncoding.
//
// # Decoding
//
// Decoder plugs ADX into an audio.Registry and yields float32 samples:
//
//	src, err := adx.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// For the raw 16-bit frames use Open:
//
//	dec, err := adx.Open(file)
//	for {
//	    frame, err := dec.NextFrame()
//	    if err == io.EOF {
//	        break
//	    }
//	    // frame[0] is the first channel
//	}
//
// # Encoding
//
// StandardEncoder needs an io.WriteSeeker because the header, which
// carries the total sample count, is written last:
//
//	enc, err := adx.NewStandardEncoder(out, adx.Spec{Channels: 2, SampleRate: 44100})
//	err = enc.WriteInterleaved(pcm)
//	err = enc.Finish()
//
// The encoder predicts from the input samples rather than from what a
// decoder reconstructs, so decoded output drifts slightly from the
// source. This matches existing encoders of the format.
//
// # Error Handling
//
// Structural problems wrap ErrFormat (ErrBadMagic, ErrBadEncoding,
// ErrBadVersion, ErrBadCopyright, ErrInvalidLayout). The end of a payload
// is reported as io.EOF; a payload cut short before its end marker is
// io.ErrUnexpectedEOF.
package adx
