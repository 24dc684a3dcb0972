// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is wrapped by every structural header error.
	ErrFormat = errors.New("adx: malformed stream")

	ErrBadMagic       = fmt.Errorf("%w: bad magic", ErrFormat)
	ErrBadEncoding    = fmt.Errorf("%w: bad encoding", ErrFormat)
	ErrBadVersion     = fmt.Errorf("%w: bad version", ErrFormat)
	ErrBadCopyright   = fmt.Errorf("%w: copyright signature mismatch", ErrFormat)
	ErrInvalidLayout  = fmt.Errorf("%w: invalid block layout", ErrFormat)
	ErrHeaderTooSmall = fmt.Errorf("%w: data offset too small for header fields", ErrFormat)

	// ErrUnsupportedEncoding is returned for recognized encodings this
	// package cannot decode or encode (Preset, Exponential, AHX).
	ErrUnsupportedEncoding = errors.New("adx: unsupported encoding")

	ErrInvalidSpec     = errors.New("adx: invalid encoder spec")
	ErrChannelMismatch = errors.New("adx: frame channel count does not match stream")
	ErrEncoderFinished = errors.New("adx: encoder already finished")
)
