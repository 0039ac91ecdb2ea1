// Package codec implements the compact binary codec used by the record
// package: little-endian fixed-size scalars, byte-tagged enums, and
// length-prefixed strings/vectors whose length category (OneByte, TwoBytes,
// or TwoBytesVar) is fixed per field at schema-authoring time.
//
// Writer and Reader are the single-purpose primitives every record.Encode
// and record.Decode method is built from; they hold no knowledge of any
// specific record type.
package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/DavidVentura/tarkka/endian"
	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/internal/pool"
	"github.com/DavidVentura/tarkka/varuint"
)

// LengthCategory selects how a vector's or string's length is framed on the
// wire. It mirrors the three declared categories in the record schema.
type LengthCategory uint8

const (
	// OneByte frames a length in a single byte, for ≤255 items/bytes.
	OneByte LengthCategory = iota
	// TwoBytes frames a length in two little-endian bytes, for ≤65535 items.
	TwoBytes
	// TwoBytesVar frames a length as a VarUint, for ≤32767 bytes.
	TwoBytesVar
)

var littleEndian = endian.GetLittleEndianEngine()

// Writer accumulates compact-codec output into a caller-owned ByteBuffer.
//
// Writer never allocates its own buffer: callers obtain one from
// pool.GetRecordBuffer (or pool.GetGroupBuffer for whole-group assembly) and
// pass it in, so buffer lifetime and reuse stay under the caller's control.
type Writer struct {
	bb *pool.ByteBuffer
}

// NewWriter wraps bb for compact-codec writes.
func NewWriter(bb *pool.ByteBuffer) *Writer {
	return &Writer{bb: bb}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.bb.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.bb.Len()
}

// Uint8 writes a single byte scalar or enum discriminant.
func (w *Writer) Uint8(v uint8) {
	w.bb.MustWrite([]byte{v})
}

// Uint16 writes a 2-byte little-endian scalar.
func (w *Writer) Uint16(v uint16) {
	w.bb.B = littleEndian.AppendUint16(w.bb.B, v)
}

// Uint32 writes a 4-byte little-endian scalar.
func (w *Writer) Uint32(v uint32) {
	w.bb.B = littleEndian.AppendUint32(w.bb.B, v)
}

// VarUint writes v in its 1-or-2-byte VarUint form.
func (w *Writer) VarUint(v varuint.VarUint) {
	w.bb.B = v.Append(w.bb.B)
}

// Length writes n under the declared category.
//
// TwoBytesVar fails with errs.ErrInvalidData if n exceeds varuint.Max;
// OneByte fails if n exceeds 255.
func (w *Writer) Length(n int, cat LengthCategory) error {
	switch cat {
	case OneByte:
		if n > 0xFF {
			return fmt.Errorf("%w: length %d exceeds OneByte max 255", errs.ErrInvalidData, n)
		}
		w.Uint8(uint8(n))
	case TwoBytes:
		if n > 0xFFFF {
			return fmt.Errorf("%w: length %d exceeds TwoBytes max 65535", errs.ErrInvalidData, n)
		}
		w.Uint16(uint16(n))
	case TwoBytesVar:
		vu, err := varuint.New(n)
		if err != nil {
			return err
		}
		w.VarUint(vu)
	default:
		return fmt.Errorf("%w: unknown length category %d", errs.ErrInvalidData, cat)
	}

	return nil
}

// RawBytes appends b with no length prefix, for schema elements whose
// length is recorded by a sibling field instead of inline (the L2
// directory's front-coded suffix bytes, framed by a preceding suffix_len
// byte).
func (w *Writer) RawBytes(b []byte) {
	w.bb.MustWrite(b)
}

// String writes s as a VarUint length followed by its UTF-8 bytes.
func (w *Writer) String(s string) error {
	vu, err := varuint.New(len(s))
	if err != nil {
		return fmt.Errorf("%w: string too long for VarUint: %d bytes", errs.ErrInvalidData, len(s))
	}

	w.VarUint(vu)
	w.bb.MustWrite([]byte(s))

	return nil
}

// OptionalString writes s: a VarUint length, 0 for absent.
//
// A present-but-empty string is forbidden by the schema and returns
// errs.ErrInvalidData; use a nil pointer to mean absent.
func (w *Writer) OptionalString(s *string) error {
	if s == nil {
		w.VarUint(0)
		return nil
	}

	if *s == "" {
		return fmt.Errorf("%w: present-but-empty optional string is forbidden", errs.ErrInvalidData)
	}

	return w.String(*s)
}

// Reader decodes compact-codec fields from an in-memory byte slice.
//
// Readers are stateful over Offset; a record.Decode call walks a Reader
// field by field in schema order, same as the Writer it mirrors.
type Reader struct {
	data []byte
	off  int
}

// NewReader wraps data for compact-codec reads starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the index of the next unread byte.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d at offset %d", errs.ErrIo, n, r.Remaining(), r.off)
	}

	return nil
}

// Uint8 reads a single byte scalar or enum discriminant.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}

	v := r.data[r.off]
	r.off++

	return v, nil
}

// Uint16 reads a 2-byte little-endian scalar.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}

	v := littleEndian.Uint16(r.data[r.off:])
	r.off += 2

	return v, nil
}

// Uint32 reads a 4-byte little-endian scalar.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}

	v := littleEndian.Uint32(r.data[r.off:])
	r.off += 4

	return v, nil
}

// VarUint reads one VarUint-encoded length.
func (r *Reader) VarUint() (varuint.VarUint, error) {
	v, next, err := varuint.Decode(r.data, r.off)
	if err != nil {
		return 0, err
	}

	r.off = next

	return v, nil
}

// Length reads a length under the declared category.
func (r *Reader) Length(cat LengthCategory) (int, error) {
	switch cat {
	case OneByte:
		v, err := r.Uint8()
		return int(v), err
	case TwoBytes:
		v, err := r.Uint16()
		return int(v), err
	case TwoBytesVar:
		v, err := r.VarUint()
		return int(v), err
	default:
		return 0, fmt.Errorf("%w: unknown length category %d", errs.ErrInvalidData, cat)
	}
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// String reads a VarUint-length-prefixed UTF-8 string.
//
// Fails with errs.ErrInvalidData if the decoded bytes aren't valid UTF-8.
func (r *Reader) String() (string, error) {
	n, err := r.VarUint()
	if err != nil {
		return "", err
	}

	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", errs.ErrInvalidData)
	}

	return string(b), nil
}

// OptionalString reads an Option<String>: VarUint length, 0 means absent.
//
// Fails with errs.ErrInvalidData if the decoded bytes aren't valid UTF-8.
func (r *Reader) OptionalString() (*string, error) {
	n, err := r.VarUint()
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	b, err := r.Bytes(int(n))
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: optional string is not valid UTF-8", errs.ErrInvalidData)
	}

	s := string(b)

	return &s, nil
}
