// SPDX-License-Identifier: EPL-2.0

// Package audio defines the interfaces shared by every format package.
//
// # Source Interface
//
// A Source streams interleaved float32 samples in [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// The ADX decoder and the PCM container adapters all return a Source, so
// an ADX stream and a WAV file are read the same way.
//
// # Format Registry
//
// The registry maps a format key, usually a file extension, to a Decoder:
//
//	registry := audio.NewRegistry()
//	registry.Register("adx", adx.Decoder{})
//	decoder, ok := registry.Get("ADX") // keys are case-insensitive
//
// Formats lists what is registered, which is handy for usage messages.
//
// # Pipelines
//
// Resampler and MonoMixer wrap a Source and are Sources themselves:
//
//	src = audio.NewMonoMixer(audio.NewResampler(src, 22050))
//
// Resampler uses Catmull-Rom interpolation and smooths the input when
// lowering the rate. MonoMixer averages the channels of each frame.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process n samples from buf
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
