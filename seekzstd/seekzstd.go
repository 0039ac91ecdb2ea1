// Package seekzstd is the single concatenated-stream container every
// .dict file uses for its L2 directory and its payload: a seekable Zstd
// stream built from github.com/SaveTheRbtz/zstd-seekable-format-go, which
// adds a skippable-frame seek table after a normal sequence of Zstd
// frames so a reader can jump straight to the frame holding a given
// uncompressed byte offset instead of decompressing from the start.
//
// FrameBytes bounds how much uncompressed data goes into a single Zstd
// frame; WriteFrame splits any longer write across as many frames as it
// takes, kept well under maxDecoderFrameSize (the reader library's 128 MiB
// OOM guard) so one oversized L1 group can't force a reader to
// decompress a huge frame just to serve a small ReadWindow call.
package seekzstd

import (
	"fmt"
	"io"

	"github.com/DavidVentura/tarkka/errs"
	"github.com/SaveTheRbtz/zstd-seekable-format-go/pkg/seekable"
	"github.com/klauspost/compress/zstd"
)

// FrameBytes is the maximum amount of uncompressed data WriteFrame turns
// into a single Zstd frame. A data slice longer than FrameBytes is split
// across multiple frames transparently; ReadWindow can still pull an
// arbitrary byte range spanning several frames, so callers never need to
// know where a frame boundary fell. Bounding frame size keeps
// ReadWindow's random-access windows cheap regardless of how large a
// single L1 group's L2 directory or payload bytes grow.
const FrameBytes = 1 << 20 // 1 MiB

// Writer appends one Zstd frame per Write call and, on Close, appends the
// seek table that makes the whole stream randomly accessible.
type Writer struct {
	sw  seekable.ConcurrentWriter
	enc *zstd.Encoder
}

// NewWriter wraps w. The caller owns w and must Close the Writer before
// closing w; Close does not close the underlying writer.
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(9)), zstd.WithEncoderCRC(false))
	if err != nil {
		return nil, fmt.Errorf("%w: constructing zstd encoder: %v", errs.ErrIo, err)
	}

	sw, err := seekable.NewWriter(w, enc)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("%w: constructing seekable writer: %v", errs.ErrIo, err)
	}

	return &Writer{sw: sw, enc: enc}, nil
}

// WriteFrame compresses data into one or more Zstd frames, each holding at
// most FrameBytes of uncompressed data, and appends them to the stream. It
// returns the uncompressed byte offset at which data begins; offsetBefore
// plus len(data) is what a reader later passes to Reader.ReadWindow, which
// reads across whatever frame split WriteFrame chose without the caller
// needing to track it.
func (w *Writer) WriteFrame(offsetBefore int64, data []byte) (int64, error) {
	offset := offsetBefore

	for len(data) > 0 {
		chunk := data
		if len(chunk) > FrameBytes {
			chunk = chunk[:FrameBytes]
		}

		n, err := w.sw.Write(chunk)
		if err != nil {
			return 0, fmt.Errorf("%w: writing seekable frame: %v", errs.ErrIo, err)
		}

		if n != len(chunk) {
			return 0, fmt.Errorf("%w: short seekable frame write: wrote %d of %d bytes", errs.ErrIo, n, len(chunk))
		}

		offset += int64(n)
		data = data[len(chunk):]
	}

	return offset, nil
}

// Close finalizes the seek table. It must be called exactly once, after
// every frame has been written, before the underlying io.Writer is closed.
func (w *Writer) Close() error {
	defer w.enc.Close()

	if err := w.sw.Close(); err != nil {
		return fmt.Errorf("%w: closing seekable writer: %v", errs.ErrIo, err)
	}

	return nil
}

// Reader provides random-access decompression over a previously written
// seekable Zstd stream.
type Reader struct {
	sr  seekable.Reader
	dec *zstd.Decoder
}

// NewReader wraps rs, which must expose the full stream written by a
// Writer (including its trailing seek table).
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: constructing zstd decoder: %v", errs.ErrIo, err)
	}

	sr, err := seekable.NewReader(rs, dec)
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: constructing seekable reader: %v", errs.ErrIo, err)
	}

	return &Reader{sr: sr, dec: dec}, nil
}

// ReadWindow decompresses exactly length uncompressed bytes starting at
// offset, without decompressing any frame the window does not touch.
//
// This is the set_offset/set_offset_limit access pattern the on-disk
// format is built around: the file reader calls it once to pull an L2
// group (offset = the group's directory-declared L2 window) and once more
// to pull the matching payload record (offset = the group's payload
// window plus the in-group byte position front-coding resolved).
func (r *Reader) ReadWindow(offset, length int64) ([]byte, error) {
	buf := make([]byte, length)

	n, err := r.sr.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: reading window [%d, %d): %v", errs.ErrIo, offset, offset+length, err)
	}

	if int64(n) != length {
		return nil, fmt.Errorf("%w: short window read at %d: got %d of %d bytes", errs.ErrIo, offset, n, length)
	}

	return buf, nil
}

// Close releases the reader's resources. It does not close the underlying
// io.ReadSeeker.
func (r *Reader) Close() error {
	defer r.dec.Close()

	if err := r.sr.Close(); err != nil {
		return fmt.Errorf("%w: closing seekable reader: %v", errs.ErrIo, err)
	}

	return nil
}
