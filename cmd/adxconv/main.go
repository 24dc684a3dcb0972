// SPDX-License-Identifier: EPL-2.0

// Command adxconv inspects and converts CRI ADX audio.
//
// Usage:
//
//	adxconv info voice.adx
//	adxconv decode -o voice.wav voice.adx
//	adxconv decode -o voice.i16be voice.adx   # raw 16-bit big-endian PCM
//	adxconv encode -o voice.adx voice.wav      # also .aiff, .aif, .mp3, .ogg, .i16be
//	adxconv encode -rate 22050 -mono -o voice.adx voice.wav
//	adxconv encode -raw-rate 32000 -raw-channels 1 -o voice.adx voice.i16be
//
// Encoding keeps the input sample rate and channel count unless -rate or
// -mono is given, and writes the Standard encoding with a 500 Hz highpass
// cutoff.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ik5/adxpbx/formats/pcmfile"
)

const (
	// samples per read when streaming between formats
	bufferSize = 4096
)

var errUsage = errors.New("usage: adxconv <info|decode|encode> [options] <input>")

func main() {
	log.SetFlags(0)
	log.SetPrefix("adxconv: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		fs := flag.NewFlagSet("info", flag.ContinueOnError)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: adxconv info <input.adx>")
		}
		return printInfo(stdout, fs.Arg(0))

	case "decode", "encode":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		output := fs.String("o", "", "Output file path (required)")
		var opts options
		fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
		fs.IntVar(&opts.rate, "rate", 0, "Resample to this rate in Hz (0 keeps the input rate)")
		fs.BoolVar(&opts.mono, "mono", false, "Mix down to one channel")
		fs.IntVar(&opts.rawRate, "raw-rate", pcmfile.DefaultRawRate, "Sample rate of .i16be input")
		fs.IntVar(&opts.rawChannels, "raw-channels", pcmfile.DefaultRawChannels, "Channel count of .i16be input")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 || *output == "" {
			fs.Usage()
			return fmt.Errorf("usage: adxconv %s -o <output> <input>", cmd)
		}
		if opts.rate < 0 {
			return fmt.Errorf("invalid -rate %d", opts.rate)
		}

		convert := encodeFile
		if cmd == "decode" {
			convert = decodeFile
		}
		frames, err := convert(fs.Arg(0), *output, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s (%d frames)\n", *output, frames)
		return nil

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}
