// SPDX-License-Identifier: EPL-2.0

package pcmfile

import "errors"

var (
	// ErrUnknownFormat indicates no decoder is registered for a file extension
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrNotWavFile indicates the input is not a RIFF/WAVE file
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrNotAiffFile indicates the input is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrNotPCM indicates a compressed WAV payload
	ErrNotPCM = errors.New("only PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a sample width other than 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32-bit PCM is supported")

	// ErrRawLayout indicates a headerless stream without a usable rate or channel count
	ErrRawLayout = errors.New("raw PCM needs a positive sample rate and channel count")
)
