// Package compress provides compression and decompression codecs for the build
// pipeline's external-merge spill runs (see the merge package).
//
// The on-disk .dict payload stream always uses the seekable zstd container in
// the seekzstd package — that choice is fixed by the file format and is not
// configurable. This package exists for a different, internal concern: when
// an index build spills partially-merged runs to temporary files
// (merge.Options.SpillThreshold), each run is compressed with one of these
// codecs before being written to disk and decompressed again during the
// k-way merge. Because spill files are ephemeral and never part of the
// on-disk .dict format, any general-purpose byte compressor works here, and
// the choice can favor decompression speed over ratio.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (format.CompressionNone): no-op passthrough, useful for tests
//   - Zstd (format.CompressionZstd): best ratio, used when spill volume is
//     large relative to available disk
//   - S2 (format.CompressionS2): Snappy-family, balanced
//   - LZ4 (format.CompressionLZ4): fastest decompression, the merge package's
//     default, since spill runs are read back far more often than written
//
// # Selecting a codec
//
//	codec, err := compress.GetCodec(format.CompressionLZ4)
//	compressed, err := codec.Compress(spillRunBytes)
//	...
//	original, err := codec.Decompress(compressed)
//
// # Zstd backend selection
//
// Two Zstd implementations are selected by the `cgo` build constraint,
// matching the teacher library's split: zstd_cgo.go (compiled whenever cgo
// is enabled, using github.com/valyala/gozstd for lower CPU overhead at the
// cost of a cgo dependency) and zstd_pure.go (compiled when cgo is disabled,
// e.g. CGO_ENABLED=0, pure Go via github.com/klauspost/compress/zstd). Both
// implement the same ZstdCompressor type.
package compress
