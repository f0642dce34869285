package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Block headers are written in place into the arena in little-endian byte
// order. The standard library implementation is already well optimized by
// the compiler; binary.LittleEndian calls inline cleanly on the hot path.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
