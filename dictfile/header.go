// Package dictfile implements the on-disk .dict container: a 32-byte
// header, an uncompressed L1 directory keyed by 3-byte headword prefixes,
// and a single seekable-Zstd stream (via the seekzstd package) holding the
// front-coded L2 directory followed by every TaggedWord's encoded payload.
//
// Write assembles a file from a []record.TaggedWord (typically the merge
// package's output), grouping and sorting it itself; Reader opens one and
// resolves individual
// headword lookups without decoding the whole file.
package dictfile

import (
	"encoding/binary"
	"fmt"

	"github.com/DavidVentura/tarkka/errs"
)

const (
	magic         = "DICT"
	formatVersion = 1

	headerSize  = 32
	l1EntrySize = 11 // 3-byte key + 4-byte L2 size + 4-byte payload offset
)

var littleEndian = binary.LittleEndian

// header is the fixed 32-byte file preamble.
type header struct {
	l1Len      uint32
	l2Len      uint32
	payloadLen uint32
	buildTime  uint64
	version    uint8
}

// encode writes h in its fixed 32-byte wire layout.
func (h header) encode() []byte {
	buf := make([]byte, headerSize)

	copy(buf[0:4], magic)
	littleEndian.PutUint32(buf[4:8], h.l1Len)
	littleEndian.PutUint32(buf[8:12], h.l2Len)
	littleEndian.PutUint32(buf[12:16], h.payloadLen)
	littleEndian.PutUint64(buf[16:24], h.buildTime)
	buf[24] = h.version
	// buf[25:32] stays zero: reserved.

	return buf
}

// decodeHeader parses and validates a 32-byte header. A magic or version
// mismatch, or non-zero reserved bytes, is errs.ErrInvalidFormat: those
// conditions mean this isn't a well-formed file of a version this reader
// understands, as opposed to errs.ErrInvalidData which covers malformed
// content within an otherwise well-formed file.
func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrIo, len(buf), headerSize)
	}

	if string(buf[0:4]) != magic {
		return header{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidFormat, buf[0:4])
	}

	version := buf[24]
	if version != formatVersion {
		return header{}, fmt.Errorf("%w: unsupported format version %d", errs.ErrInvalidFormat, version)
	}

	for _, b := range buf[25:32] {
		if b != 0 {
			return header{}, fmt.Errorf("%w: non-zero reserved header byte", errs.ErrInvalidFormat)
		}
	}

	h := header{
		l1Len:      littleEndian.Uint32(buf[4:8]),
		l2Len:      littleEndian.Uint32(buf[8:12]),
		payloadLen: littleEndian.Uint32(buf[12:16]),
		buildTime:  littleEndian.Uint64(buf[16:24]),
		version:    version,
	}

	if h.l1Len%l1EntrySize != 0 {
		return header{}, fmt.Errorf("%w: L1 length %d is not a multiple of %d", errs.ErrInvalidFormat, h.l1Len, l1EntrySize)
	}

	return h, nil
}

// l1Entry is one fixed-width L1 directory row.
type l1Entry struct {
	key        [3]byte
	l2Size     uint32
	payloadOff uint32
}

func encodeL1(entries []l1Entry) []byte {
	buf := make([]byte, 0, len(entries)*l1EntrySize)

	for _, e := range entries {
		buf = append(buf, e.key[:]...)

		var scratch [4]byte
		littleEndian.PutUint32(scratch[:], e.l2Size)
		buf = append(buf, scratch[:]...)

		littleEndian.PutUint32(scratch[:], e.payloadOff)
		buf = append(buf, scratch[:]...)
	}

	return buf
}

func decodeL1(buf []byte) []l1Entry {
	entries := make([]l1Entry, len(buf)/l1EntrySize)

	for i := range entries {
		off := i * l1EntrySize
		entries[i] = l1Entry{
			key:        [3]byte{buf[off], buf[off+1], buf[off+2]},
			l2Size:     littleEndian.Uint32(buf[off+3 : off+7]),
			payloadOff: littleEndian.Uint32(buf[off+7 : off+11]),
		}
	}

	return entries
}

// groupKey derives the 3-byte L1 key for word, padding with leading zero
// bytes for words shorter than 3 bytes. word must be non-empty; callers
// are expected to have already run record.TaggedWord.Validate.
func groupKey(word string) ([3]byte, error) {
	b := []byte(word)

	switch {
	case len(b) >= 3:
		return [3]byte{b[0], b[1], b[2]}, nil
	case len(b) == 2:
		return [3]byte{0, b[0], b[1]}, nil
	case len(b) == 1:
		return [3]byte{0, 0, b[0]}, nil
	default:
		return [3]byte{}, errs.ErrEmptyWord
	}
}
