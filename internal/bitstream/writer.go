// SPDX-License-Identifier: EPL-2.0

package bitstream

import (
	"fmt"
	"io"
)

// Writer packs big-endian fields into an io.Writer. Whole bytes are
// written as soon as they are complete; a trailing partial byte waits
// for Flush.
type Writer struct {
	w io.Writer

	acc     uint64
	accBits uint
	written int64
	scratch [8]byte
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBits writes the low n bits of v, most significant first.
func (b *Writer) WriteBits(v uint32, n uint) error {
	if n == 0 || n > 32 {
		return ErrBitCount
	}

	b.acc = b.acc<<n | uint64(v)&(1<<n-1)
	b.accBits += n

	if b.accBits < 8 {
		return nil
	}

	count := 0
	for b.accBits >= 8 {
		b.accBits -= 8
		b.scratch[count] = byte(b.acc >> b.accBits)
		count++
	}
	b.acc &= 1<<b.accBits - 1

	return b.emit(b.scratch[:count])
}

func (b *Writer) WriteUint8(v uint8) error   { return b.WriteBits(uint32(v), 8) }
func (b *Writer) WriteUint16(v uint16) error { return b.WriteBits(uint32(v), 16) }
func (b *Writer) WriteUint32(v uint32) error { return b.WriteBits(v, 32) }

// WriteBytes writes p verbatim. The writer must be byte aligned.
func (b *Writer) WriteBytes(p []byte) error {
	if b.accBits != 0 {
		for _, c := range p {
			if err := b.WriteUint8(c); err != nil {
				return err
			}
		}
		return nil
	}
	return b.emit(p)
}

// WriteZeros writes n zero bytes.
func (b *Writer) WriteZeros(n int) error {
	var zero [16]byte
	for n > 0 {
		chunk := min(n, len(zero))
		if err := b.WriteBytes(zero[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Flush pads a pending partial byte with zero bits and writes it.
func (b *Writer) Flush() error {
	if b.accBits == 0 {
		return nil
	}
	return b.WriteBits(0, 8-b.accBits)
}

// Written reports how many bytes reached the underlying writer.
func (b *Writer) Written() int64 { return b.written }

func (b *Writer) emit(p []byte) error {
	n, err := b.w.Write(p)
	b.written += int64(n)
	if err != nil {
		return fmt.Errorf("bitstream: %w", err)
	}
	return nil
}
