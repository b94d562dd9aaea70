package stream

import (
	"encoding/binary"
)

const (
	// wordSize is the width of the fast path's copy unit in bytes.
	wordSize = 8
	// lowLaneBits has the lowest bit of every byte lane set.
	lowLaneBits = 0x0101010101010101
	// highLaneBits has the highest bit of every byte lane set.
	highLaneBits = 0x8080808080808080
)

// hasZeroByte reports whether any byte lane of the word is zero, using the
// subtract-and-mask predicate from the Stanford bit-twiddling collection:
// subtracting one from each lane borrows the high bit exactly when masking
// out lanes that already had it set leaves the zero lanes flagged.
func hasZeroByte(word uint64) bool {
	return (word-lowLaneBits)&^word&highLaneBits != 0
}

// copyUntilZero copies bytes from src to dst, stopping at the first zero byte
// in src (which is not copied), the end of src, or the end of dst, whichever
// comes first, and returns the number of bytes copied.
//
// While a full word remains on both sides, whole 64-bit words are tested with
// hasZeroByte and copied at a time. The load order is fixed rather than
// native: the zero-lane predicate is independent of byte order within the
// word, and the matching store order makes the copy itself order-neutral. The
// scalar tail finishes the transfer and produces results byte-identical to a
// plain terminator-seeking loop for every offset and budget.
func copyUntilZero(dst, src []byte) int {
	copied := 0

	// Word phase: copy whole words free of zero lanes.
	for len(src)-copied >= wordSize && len(dst)-copied >= wordSize {
		word := binary.LittleEndian.Uint64(src[copied:])
		if hasZeroByte(word) {
			break
		}
		binary.LittleEndian.PutUint64(dst[copied:], word)
		copied += wordSize
	}

	// Scalar phase: copy the remainder a byte at a time up to the
	// terminator or either bound.
	for copied < len(dst) && copied < len(src) && src[copied] != 0 {
		dst[copied] = src[copied]
		copied++
	}

	// Done.
	return copied
}
