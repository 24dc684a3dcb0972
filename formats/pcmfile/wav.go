// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/utils"
)

const wavFormatPCM = 1

// WAVDecoder decodes RIFF/WAVE files holding integer PCM.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}

	return newIntSource("wav", dec, dec.Format(), int(dec.BitDepth))
}

// WriteWAV drains src into ws as 16-bit PCM WAV and returns the number
// of frames written. bufferSize is the read size in samples.
func WriteWAV(ws io.WriteSeeker, src audio.Source, bufferSize int) (int, error) {
	channels := src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("wav output: %d channels", channels)
	}
	if bufferSize < channels {
		bufferSize = max(src.BufSize(), 4096)
	}
	bufferSize -= bufferSize % channels

	enc := wav.NewEncoder(ws, src.SampleRate(), 16, channels, wavFormatPCM)

	samples := make([]float32, bufferSize)
	out := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		Data:           make([]int, bufferSize),
		SourceBitDepth: 16,
	}

	frames := 0
	for {
		n, err := src.ReadSamples(samples)
		if n > 0 {
			out.Data = out.Data[:n]
			for i, v := range samples[:n] {
				out.Data[i] = int(utils.Float32ToInt16(v))
			}
			if werr := enc.Write(out); werr != nil {
				return frames, fmt.Errorf("writing wav samples: %w", werr)
			}
			frames += n / channels
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frames, err
		}
	}

	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("finalizing wav: %w", err)
	}
	return frames, nil
}
