// SPDX-License-Identifier: EPL-2.0

// Package bitstream reads and writes the big-endian bit and byte fields
// used by the ADX container.
package bitstream

import (
	"errors"
	"fmt"
	"io"
)

// ErrBitCount is returned when a read asks for fewer than 1 or more than 32 bits.
var ErrBitCount = errors.New("bitstream: bit count must be between 1 and 32")

// Reader returns groups of 1..32 bits from an io.Reader, most significant
// bit first. Bytes are pulled from the source one at a time, so a Reader
// never consumes more input than the bits it has handed out rounded up to
// a whole byte.
type Reader struct {
	r io.Reader

	// buf holds the unread low-order bits of the last byte, left aligned.
	buf      byte
	bitsLeft uint
	one      [1]byte
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read returns the next n bits as an unsigned value.
// A source that ends before n bits are available yields io.ErrUnexpectedEOF,
// or io.EOF when not a single bit of the request was available.
func (b *Reader) Read(n uint) (uint32, error) {
	if n == 0 || n > 32 {
		return 0, ErrBitCount
	}

	var result uint32
	want := n

	for want > 0 {
		if b.bitsLeft == 0 {
			if err := b.fill(); err != nil {
				if err == io.EOF && want != n {
					return 0, io.ErrUnexpectedEOF
				}
				return 0, err
			}
		}

		take := min(want, b.bitsLeft)
		result = result<<take | uint32(b.buf>>(8-take))
		b.buf <<= take
		b.bitsLeft -= take
		want -= take
	}

	return result, nil
}

// ReadSigned reads n bits and sign-extends them from bit n-1.
func (b *Reader) ReadSigned(n uint) (int32, error) {
	v, err := b.Read(n)
	if err != nil {
		return 0, err
	}
	return SignExtend(v, n), nil
}

// Align drops the unread bits of a partially consumed byte.
func (b *Reader) Align() {
	b.buf = 0
	b.bitsLeft = 0
}

func (b *Reader) fill() error {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("bitstream: %w", err)
	}
	b.buf = b.one[0]
	b.bitsLeft = 8
	return nil
}

// SignExtend interprets the low n bits of v as a two's-complement number.
func SignExtend(v uint32, n uint) int32 {
	shift := 32 - n
	return int32(v<<shift) >> shift
}
