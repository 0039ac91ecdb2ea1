package dictfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/DavidVentura/tarkka/codec"
	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/record"
	"github.com/DavidVentura/tarkka/seekzstd"
)

// Reader holds one open .dict file's L1 directory in memory and a
// decoder over its seekable stream. A Reader's Lookup is stateful (the
// underlying decoder tracks a read window); concurrent lookups on the
// same Reader are not safe. Open additional Readers for concurrent access.
type Reader struct {
	entries   []l1Entry
	l2Offsets []int64 // cumulative L2 byte offset of each entry's group
	l2Len     int64
	sz        *seekzstd.Reader
}

// Open parses a .dict file's header and L1 directory from rs and wraps
// its seekable stream for on-demand lookups. rs must expose the complete
// file, including the trailing seek table seekzstd appends.
func Open(rs io.ReadSeeker) (*Reader, error) {
	hdrBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(rs, hdrBuf); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", errs.ErrIo, err)
	}

	h, err := decodeHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	l1Buf := make([]byte, h.l1Len)
	if _, err := io.ReadFull(rs, l1Buf); err != nil {
		return nil, fmt.Errorf("%w: reading L1 directory: %v", errs.ErrIo, err)
	}

	entries := decodeL1(l1Buf)

	for i := 1; i < len(entries); i++ {
		if bytes.Compare(entries[i-1].key[:], entries[i].key[:]) >= 0 {
			return nil, fmt.Errorf("%w: L1 keys are not strictly ascending", errs.ErrInvalidFormat)
		}
	}

	offsets := make([]int64, len(entries))

	var cum int64
	for i, e := range entries {
		offsets[i] = cum
		cum += int64(e.l2Size)
	}

	if cum != int64(h.l2Len) {
		return nil, fmt.Errorf("%w: L1 group sizes sum to %d, header declares L2 length %d", errs.ErrInvalidFormat, cum, h.l2Len)
	}

	base := int64(headerSize) + int64(h.l1Len)

	sz, err := seekzstd.NewReader(&offsetReadSeeker{rs: rs, base: base})
	if err != nil {
		return nil, err
	}

	return &Reader{
		entries:   entries,
		l2Offsets: offsets,
		l2Len:     int64(h.l2Len),
		sz:        sz,
	}, nil
}

// OpenFile opens path and returns a Reader over it. The caller must call
// Reader.Close to release both the decoder and the underlying file.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", errs.ErrIo, path, err)
	}

	r, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

// Close releases the Reader's decoder.
func (r *Reader) Close() error {
	return r.sz.Close()
}

// Lookup resolves word to its TaggedWord, or returns (nil, nil) if word
// is absent. Malformed L2 bytes in the matching group (truncation,
// invalid VarUint, zero suffix length, a shared-prefix length exceeding
// the previous word) are fatal to this one lookup and reported as
// errs.ErrInvalidData; they do not invalidate the Reader for subsequent
// lookups in other groups.
func (r *Reader) Lookup(word string) (*record.TaggedWord, error) {
	if word == "" {
		return nil, errs.ErrEmptyWord
	}

	key, err := groupKey(word)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range r.entries {
		if e.key == key {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, nil
	}

	entry := r.entries[idx]

	l2Bytes, err := r.sz.ReadWindow(r.l2Offsets[idx], int64(entry.l2Size))
	if err != nil {
		return nil, err
	}

	l2 := codec.NewReader(l2Bytes)

	var prev string
	var withinGroupOffset int64

	for l2.Remaining() > 0 {
		shared, err := l2.Uint8()
		if err != nil {
			return nil, err
		}

		if int(shared) > len(prev) || shared > 127 {
			return nil, fmt.Errorf("%w: shared prefix length %d invalid for previous word of length %d", errs.ErrInvalidData, shared, len(prev))
		}

		suffixLen, err := l2.Uint8()
		if err != nil {
			return nil, err
		}

		if suffixLen == 0 {
			return nil, fmt.Errorf("%w: zero suffix length in L2 entry", errs.ErrInvalidData)
		}

		suffix, err := l2.Bytes(int(suffixLen))
		if err != nil {
			return nil, err
		}

		current := prev[:shared] + string(suffix)

		payloadSize, err := l2.VarUint()
		if err != nil {
			return nil, err
		}

		if current == word {
			abs := r.l2Len + int64(entry.payloadOff) + withinGroupOffset

			payloadBytes, err := r.sz.ReadWindow(abs, int64(payloadSize))
			if err != nil {
				return nil, err
			}

			tw, err := record.DecodeTaggedWord(codec.NewReader(payloadBytes), word)
			if err != nil {
				return nil, err
			}

			return &tw, nil
		}

		withinGroupOffset += int64(payloadSize)
		prev = current
	}

	return nil, nil
}
