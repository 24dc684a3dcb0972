// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/adxpbx/internal/bitstream"
)

const (
	// Magic opens every ADX stream.
	Magic uint16 = 0x8000

	// EndMarker in a scale field terminates the payload.
	EndMarker uint16 = 0x8001

	// fixed fields from magic through flags
	fixedHeaderLen = 20
	loopInfoLen    = 24

	// V3 loop info is only read when the header region can hold it.
	loopInfoMinOffset = 40

	// DefaultDataOffset is used by WriteHeader when no loop info is written.
	DefaultDataOffset uint16 = 0x20
	// LoopDataOffset is used by WriteHeader when V3 loop info is written.
	LoopDataOffset uint16 = 0x38
)

var copyright = [6]byte{0x28, 0x63, 0x29, 0x43, 0x52, 0x49} // "(c)CRI"

// Encoding identifies how payload blocks are coded.
type Encoding uint8

const (
	EncodingPreset Encoding = iota + 1
	EncodingStandard
	EncodingExponential
	EncodingAHX
)

func (e Encoding) String() string {
	switch e {
	case EncodingPreset:
		return "preset"
	case EncodingStandard:
		return "standard"
	case EncodingExponential:
		return "exponential"
	case EncodingAHX:
		return "ahx"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

func encodingFromTag(tag byte) (Encoding, bool) {
	switch tag {
	case 0x02:
		return EncodingPreset, true
	case 0x03:
		return EncodingStandard, true
	case 0x04:
		return EncodingExponential, true
	case 0x10, 0x11:
		return EncodingAHX, true
	}
	return 0, false
}

func (e Encoding) tag() (byte, bool) {
	switch e {
	case EncodingPreset:
		return 0x02, true
	case EncodingStandard:
		return 0x03, true
	case EncodingExponential:
		return 0x04, true
	case EncodingAHX:
		return 0x10, true
	}
	return 0, false
}

// Version is the header layout revision. The value is the on-disk tag.
type Version uint8

const (
	Version3 Version = 0x03
	Version4 Version = 0x04
	// Version5 is Version4 without looping support.
	Version5 Version = 0x05
	Version6 Version = 0x06
)

func (v Version) valid() bool {
	return v >= Version3 && v <= Version6
}

// LoopInfo is the V3 loop record.
type LoopInfo struct {
	AlignmentSamples uint16
	EnabledShort     uint16
	EnabledInt       uint32
	BeginSample      uint32
	BeginByte        uint32
	EndSample        uint32
	EndByte          uint32
}

// Enabled reports whether either enable flag is set.
func (l LoopInfo) Enabled() bool {
	return l.EnabledShort != 0 || l.EnabledInt != 0
}

// Header is the decoded ADX stream header.
type Header struct {
	Encoding          Encoding
	BlockSize         uint8 // bytes per block per channel, scale included
	SampleBitDepth    uint8
	ChannelCount      uint8
	SampleRate        uint32
	TotalSamples      uint32
	HighpassFrequency uint16
	Version           Version
	Flags             uint8

	// DataOffset locates the copyright signature, which starts at
	// DataOffset-2. Payload blocks follow the signature.
	DataOffset uint16

	// Loop is only carried by Version3 headers large enough to hold it.
	Loop *LoopInfo
}

// SamplesPerBlock is the number of samples each channel block codes.
func (h *Header) SamplesPerBlock() int {
	if h.SampleBitDepth == 0 || h.BlockSize <= 2 {
		return 0
	}
	return (int(h.BlockSize) - 2) * 8 / int(h.SampleBitDepth)
}

// PayloadOffset is the absolute position of the first payload block.
func (h *Header) PayloadOffset() int64 {
	return int64(h.DataOffset) + 4
}

func (h *Header) hasLoop() bool {
	return h.Version == Version3 && h.Loop != nil
}

// ReadHeader parses the header at the start of rs and validates the
// copyright signature. On success rs is positioned at the first payload
// block.
func ReadHeader(rs io.ReadSeeker) (*Header, error) {
	var fixed [fixedHeaderLen]byte
	if _, err := io.ReadFull(rs, fixed[:2]); err != nil {
		return nil, fmt.Errorf("reading adx magic: %w", err)
	}
	if binary.BigEndian.Uint16(fixed[0:2]) != Magic {
		return nil, ErrBadMagic
	}

	if _, err := io.ReadFull(rs, fixed[2:]); err != nil {
		return nil, fmt.Errorf("reading adx header: %w", err)
	}

	enc, ok := encodingFromTag(fixed[4])
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadEncoding, fixed[4])
	}

	h := &Header{
		DataOffset:        binary.BigEndian.Uint16(fixed[2:4]),
		Encoding:          enc,
		BlockSize:         fixed[5],
		SampleBitDepth:    fixed[6],
		ChannelCount:      fixed[7],
		SampleRate:        binary.BigEndian.Uint32(fixed[8:12]),
		TotalSamples:      binary.BigEndian.Uint32(fixed[12:16]),
		HighpassFrequency: binary.BigEndian.Uint16(fixed[16:18]),
		Version:           Version(fixed[18]),
		Flags:             fixed[19],
	}

	if !h.Version.valid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadVersion, fixed[18])
	}

	if h.Version == Version3 && h.DataOffset >= loopInfoMinOffset {
		var raw [loopInfoLen]byte
		if _, err := io.ReadFull(rs, raw[:]); err != nil {
			return nil, fmt.Errorf("reading adx loop info: %w", err)
		}
		h.Loop = &LoopInfo{
			AlignmentSamples: binary.BigEndian.Uint16(raw[0:2]),
			EnabledShort:     binary.BigEndian.Uint16(raw[2:4]),
			EnabledInt:       binary.BigEndian.Uint32(raw[4:8]),
			BeginSample:      binary.BigEndian.Uint32(raw[8:12]),
			BeginByte:        binary.BigEndian.Uint32(raw[12:16]),
			EndSample:        binary.BigEndian.Uint32(raw[16:20]),
			EndByte:          binary.BigEndian.Uint32(raw[20:24]),
		}
	}

	if h.DataOffset < 2 {
		return nil, fmt.Errorf("%w: data offset %d", ErrBadCopyright, h.DataOffset)
	}

	if _, err := rs.Seek(int64(h.DataOffset)-2, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to adx copyright: %w", err)
	}

	var sig [len(copyright)]byte
	if _, err := io.ReadFull(rs, sig[:]); err != nil {
		return nil, fmt.Errorf("reading adx copyright: %w", err)
	}
	if sig != copyright {
		return nil, ErrBadCopyright
	}

	return h, nil
}

// WriteHeader serializes h followed by zero padding and the copyright
// signature, DataOffset+4 bytes in total. A zero DataOffset selects
// DefaultDataOffset or LoopDataOffset. Loop info on a non-V3 header is
// omitted.
func WriteHeader(w io.Writer, h *Header) error {
	encTag, ok := h.Encoding.tag()
	if !ok {
		return fmt.Errorf("%w: %v", ErrBadEncoding, h.Encoding)
	}
	if !h.Version.valid() {
		return fmt.Errorf("%w: 0x%02x", ErrBadVersion, uint8(h.Version))
	}

	fieldsLen := fixedHeaderLen
	if h.hasLoop() {
		fieldsLen += loopInfoLen
	}

	offset := h.DataOffset
	if offset == 0 {
		offset = DefaultDataOffset
		if h.hasLoop() {
			offset = LoopDataOffset
		}
	}
	if int(offset)-2 < fieldsLen {
		return fmt.Errorf("%w: %d < %d", ErrHeaderTooSmall, offset, fieldsLen+2)
	}

	bw := bitstream.NewWriter(w)
	steps := []func() error{
		func() error { return bw.WriteUint16(Magic) },
		func() error { return bw.WriteUint16(offset) },
		func() error { return bw.WriteUint8(encTag) },
		func() error { return bw.WriteUint8(h.BlockSize) },
		func() error { return bw.WriteUint8(h.SampleBitDepth) },
		func() error { return bw.WriteUint8(h.ChannelCount) },
		func() error { return bw.WriteUint32(h.SampleRate) },
		func() error { return bw.WriteUint32(h.TotalSamples) },
		func() error { return bw.WriteUint16(h.HighpassFrequency) },
		func() error { return bw.WriteUint8(uint8(h.Version)) },
		func() error { return bw.WriteUint8(h.Flags) },
	}
	if h.hasLoop() {
		l := h.Loop
		steps = append(steps,
			func() error { return bw.WriteUint16(l.AlignmentSamples) },
			func() error { return bw.WriteUint16(l.EnabledShort) },
			func() error { return bw.WriteUint32(l.EnabledInt) },
			func() error { return bw.WriteUint32(l.BeginSample) },
			func() error { return bw.WriteUint32(l.BeginByte) },
			func() error { return bw.WriteUint32(l.EndSample) },
			func() error { return bw.WriteUint32(l.EndByte) },
		)
	}
	steps = append(steps,
		func() error { return bw.WriteZeros(int(offset) - 2 - fieldsLen) },
		func() error { return bw.WriteBytes(copyright[:]) },
	)

	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("writing adx header: %w", err)
		}
	}

	return nil
}
