// Package varuint implements the on-disk length codec shared by every
// string and TwoBytesVar-categorized vector in the compact record codec.
//
// A VarUint encodes an unsigned integer in [0, 32767]: one byte when the
// value fits in 7 bits (high bit clear), two bytes otherwise (first byte's
// high bit set, low 7 bits plus the second byte's 8 bits form the value).
package varuint

import (
	"fmt"
	"io"

	"github.com/DavidVentura/tarkka/errs"
)

// Max is the largest value VarUint can represent.
const Max = 1<<15 - 1 // 32767

// VarUint is a decoded length value together with its wire encoding rule.
type VarUint uint16

// New constructs a VarUint, returning errs.ErrInvalidData if value exceeds Max.
func New(value int) (VarUint, error) {
	if value < 0 || value > Max {
		return 0, fmt.Errorf("%w: varuint value %d out of range [0, %d]", errs.ErrInvalidData, value, Max)
	}

	return VarUint(value), nil
}

// Len reports how many bytes Encode will write: 1 if v <= 127, else 2.
func (v VarUint) Len() int {
	if v <= 127 {
		return 1
	}

	return 2
}

// Append encodes v onto dst and returns the extended slice.
func (v VarUint) Append(dst []byte) []byte {
	if v <= 127 {
		return append(dst, byte(v))
	}

	first := byte(v&0x7F) | 0x80
	second := byte(v >> 7)

	return append(dst, first, second)
}

// Encode writes v to w, returning the number of bytes written.
func (v VarUint) Encode(w io.Writer) (int, error) {
	var buf [2]byte
	n := copy(buf[:], v.Append(buf[:0]))

	written, err := w.Write(buf[:n])
	if err != nil {
		return written, fmt.Errorf("%w: writing varuint: %v", errs.ErrIo, err)
	}

	return written, nil
}

// Decode reads one VarUint from data starting at offset, returning the
// decoded value and the offset of the first unread byte.
//
// Decode fails with errs.ErrInvalidData if data is truncated.
func Decode(data []byte, offset int) (VarUint, int, error) {
	if offset >= len(data) {
		return 0, offset, fmt.Errorf("%w: varuint: truncated at offset %d", errs.ErrInvalidData, offset)
	}

	first := data[offset]
	if first&0x80 == 0 {
		return VarUint(first), offset + 1, nil
	}

	if offset+1 >= len(data) {
		return 0, offset, fmt.Errorf("%w: varuint: truncated two-byte form at offset %d", errs.ErrInvalidData, offset)
	}

	second := data[offset+1]
	value := VarUint(first&0x7F) | VarUint(second)<<7

	return value, offset + 2, nil
}

// Read reads one VarUint from r.
//
// Read fails with errs.ErrIo on a genuine I/O error (including EOF on the
// first byte) and errs.ErrInvalidData on a truncated two-byte form.
func Read(r io.Reader) (VarUint, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading varuint: %v", errs.ErrIo, err)
	}

	first := buf[0]
	if first&0x80 == 0 {
		return VarUint(first), nil
	}

	var second [1]byte
	if _, err := io.ReadFull(r, second[:]); err != nil {
		return 0, fmt.Errorf("%w: reading varuint second byte: %v", errs.ErrInvalidData, err)
	}

	return VarUint(first&0x7F) | VarUint(second[0])<<7, nil
}
