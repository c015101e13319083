// Package seed implements the deterministic hashing that drives every
// selection in the generator. All randomness is positional: a value is a pure
// function of (seed, coordinates), so any point in the output space can be
// evaluated independently, in any order, on any machine, and the results are
// stable across versions.
package seed

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
)

// Hash computes the 32-bit hash of the given coordinates. The xxHash32 state
// is seeded with seed and fed each coordinate as a 4-byte little-endian
// two's-complement value, in order. Calling it with no coordinates is valid
// and hashes the empty input.
func Hash(s uint32, coords ...int32) uint32 {
	buf := make([]byte, 4*len(coords))
	for i, c := range coords {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(c))
	}
	return xxhash.Checksum32S(buf, s)
}

// Index maps a hash onto a list position via modulo. Callers guarantee
// size >= 1; validated profiles never expose an empty list.
func Index(h uint32, size int) int {
	return int(h % uint32(size))
}

// Mix folds four seeds into one. The inputs are concatenated as 4-byte
// little-endian unsigned values and hashed with xxHash32 under seed 0, so the
// result is order-sensitive: Mix(1,2,0,0) != Mix(2,1,0,0). Unused inputs
// should be left at 0.
func Mix(a, b, c, d uint32) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:], a)
	binary.LittleEndian.PutUint32(buf[4:], b)
	binary.LittleEndian.PutUint32(buf[8:], c)
	binary.LittleEndian.PutUint32(buf[12:], d)
	return xxhash.Checksum32S(buf[:], 0)
}
