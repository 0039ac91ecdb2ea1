// Package format holds small closed enums shared by the compress and
// seekzstd packages. It intentionally does not mirror the teacher's
// EncodingType enum (Raw/Delta/Gorilla): those encodings are specific to
// numeric time-series columns and have no analogue in a string/gloss
// dictionary, so only the compression-algorithm enum survives here.
package format

// CompressionType identifies a spill-run compression algorithm used by the
// compress package. It never appears in the on-disk .dict format, which
// always uses the seekable zstd container in seekzstd.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
