// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"io"
)

// SeekBuffer is an in-memory io.ReadWriteSeeker. Writing past the end
// grows the buffer, zero filling any gap.
type SeekBuffer struct {
	data   []byte
	offset int64
}

// NewSeekBuffer returns a SeekBuffer holding a copy of data.
func NewSeekBuffer(data []byte) *SeekBuffer {
	return &SeekBuffer{data: append([]byte(nil), data...)}
}

// Bytes returns the buffer contents.
func (b *SeekBuffer) Bytes() []byte { return b.data }

func (b *SeekBuffer) Read(p []byte) (int, error) {
	if b.offset >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.offset:])
	b.offset += int64(n)
	return n, nil
}

func (b *SeekBuffer) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.offset:], p)
	b.offset = end
	return len(p), nil
}

func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.offset + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if next < 0 {
		return 0, errors.New("negative position")
	}

	b.offset = next
	return next, nil
}

// FailingWriteSeeker fails every write after Limit bytes.
type FailingWriteSeeker struct {
	SeekBuffer
	Limit int
	Err   error
}

func (f *FailingWriteSeeker) Write(p []byte) (int, error) {
	room := f.Limit - int(f.offset)
	if room >= len(p) {
		return f.SeekBuffer.Write(p)
	}
	if room > 0 {
		n, _ := f.SeekBuffer.Write(p[:room])
		return n, f.Err
	}
	return 0, f.Err
}
