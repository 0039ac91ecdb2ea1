// Package errs defines the error taxonomy shared by the codec, record,
// seekzstd, dictfile, and merge packages.
//
// Every error a caller can receive wraps one of the sentinel errors below,
// so callers can test with errors.Is regardless of which package produced
// the wrapped message (the style the go-dictzip reference package uses:
// one base sentinel per error class, wrapped with fmt.Errorf("%w: ...")
// for context).
package errs

import "errors"

var (
	// ErrIo wraps an underlying read/write failure, including truncation.
	ErrIo = errors.New("io error")

	// ErrInvalidFormat covers magic mismatch, version mismatch, an L1
	// directory length that isn't a multiple of the fixed entry size, and
	// other structurally inconsistent declared lengths.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidData covers bad UTF-8, an unrecognized enum discriminant,
	// a malformed VarUint, an out-of-range length, or a duplicate adjacent
	// word within one L2 group.
	ErrInvalidData = errors.New("invalid data")

	// ErrEmptyWord is returned for a lookup of the zero-length headword.
	ErrEmptyWord = errors.New("empty word")

	// ErrWordTooLong is a build-time programmer error: a headword exceeds
	// the 255-byte on-disk limit. It is never returned to a reader of a
	// well-formed file; callers that construct TaggedWord values directly
	// should treat it as a bug to fix, not a runtime condition to handle.
	ErrWordTooLong = errors.New("word exceeds 255 bytes")

	// ErrUnsupportedLanguage names a language outside the injected
	// supported-language allow-list. build.Run does not check its languages
	// argument against an allow-list, and no function in this module
	// returns this error.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
