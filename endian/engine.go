// Package endian provides the little-endian byte order engine the codec
// package uses for every fixed-size scalar field.
//
// EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder
// interfaces so callers get both the Put/Uint read-write methods and the
// allocation-free Append methods from a single value.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian from the standard
// library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. The .dict file
// format is little-endian only, so this is the sole engine the codec
// package ever constructs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
