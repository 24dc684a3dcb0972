// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ik5/adxpbx"
	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/formats/adx"
	"github.com/ik5/adxpbx/formats/pcmfile"
)

// options carries the conversion flags shared by decode and encode.
type options struct {
	verbose bool
	rate    int
	mono    bool

	rawRate     int
	rawChannels int
}

func printInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h, err := adx.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("invalid ADX file: %w", err)
	}

	fmt.Fprintf(w, "Encoding:       %s\n", h.Encoding)
	fmt.Fprintf(w, "Version:        %d\n", h.Version)
	fmt.Fprintf(w, "Channels:       %d\n", h.ChannelCount)
	fmt.Fprintf(w, "Sample rate:    %d Hz\n", h.SampleRate)
	fmt.Fprintf(w, "Total samples:  %d\n", h.TotalSamples)
	fmt.Fprintf(w, "Block size:     %d bytes (%d samples)\n", h.BlockSize, h.SamplesPerBlock())
	fmt.Fprintf(w, "Bit depth:      %d\n", h.SampleBitDepth)
	fmt.Fprintf(w, "Highpass:       %d Hz\n", h.HighpassFrequency)
	fmt.Fprintf(w, "Payload offset: %d\n", h.PayloadOffset())
	if h.Loop != nil {
		fmt.Fprintf(w, "Loop:           %v, samples %d-%d\n", h.Loop.Enabled(), h.Loop.BeginSample, h.Loop.EndSample)
	}
	if h.SampleRate > 0 {
		fmt.Fprintf(w, "Duration:       %.2fs\n", float64(h.TotalSamples)/float64(h.SampleRate))
	}
	return nil
}

// decodeFile converts an ADX file to 16-bit PCM, written as WAV or as raw
// i16be depending on the output extension.
func decodeFile(inputPath, outputPath string, opts options) (frames int, err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = in.Close() }()

	src, err := adx.Decoder{}.Decode(in)
	if err != nil {
		return 0, fmt.Errorf("invalid ADX file: %w", err)
	}
	defer func() { _ = src.Close() }()

	if opts.verbose {
		log.Printf("Input: %s (%d Hz, %d channels)", inputPath, src.SampleRate(), src.Channels())
	}
	conformed := adxpbx.Conform(src, opts.rate, opts.mono)

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	if pcmfile.FormatOf(outputPath) == "i16be" {
		return pcmfile.WriteRaw16BE(out, conformed, bufferSize)
	}
	return pcmfile.WriteWAV(out, conformed, bufferSize)
}

// encodeFile converts any registered input format to Standard ADX,
// resampling or mixing down first when asked to.
func encodeFile(inputPath, outputPath string, opts options) (frames int, err error) {
	var src audio.Source
	if pcmfile.FormatOf(inputPath) == "i16be" {
		src, err = pcmfile.OpenRaw(inputPath, opts.rawRate, opts.rawChannels)
	} else {
		src, err = pcmfile.Open(inputPath)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = src.Close() }()

	if opts.verbose {
		log.Printf("Input: %s (%s, %d Hz, %d channels)",
			inputPath, pcmfile.FormatOf(inputPath), src.SampleRate(), src.Channels())
	}
	conformed := adxpbx.Conform(src, opts.rate, opts.mono)

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	return adxpbx.EncodeSource(out, conformed, bufferSize)
}
