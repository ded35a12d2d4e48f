// Package huffman builds and decodes canonical Huffman codes as specified
// by RFC 1951 section 3.2.2.
//
// The decode loop is the one popularized by Mark Adler's puff.c -- the same
// zlib-adjacent lineage coreos/pkg/zran already credits for its random-access
// technique: rather than materializing codewords up front, it walks the bit
// stream one bit at a time and reconstructs, at each length, which codeword
// range that length owns. That keeps the table itself to two slices (a
// per-length count and a canonically-ordered symbol list) instead of a
// chunk/link lookup structure, while decoding each symbol in O(code length).
package huffman

import (
	"fmt"

	"github.com/coreospkg/gzinflate/internal/bitreader"
)

// MaxBits is the longest codeword this package supports. 15 covers both the
// literal/length and distance alphabets (RFC 1951 section 3.2.7); the
// 19-symbol code-length alphabet never needs more than 7.
const MaxBits = 15

// Table is a canonical Huffman decode table built from a per-symbol code
// length vector.
type Table struct {
	count  [MaxBits + 1]int // count[l] = number of symbols with code length l
	symbol []uint16         // symbols in canonical order: by length, then by index
	empty  bool             // true if no symbol has a positive length
}

// Build constructs a canonical Huffman table from lengths, where lengths[i]
// is the code length (0..MaxBits) assigned to symbol i, and 0 means the
// symbol is absent. It enforces the Kraft equality (RFC 1951 section
// 3.2.2): the table is rejected unless the assigned lengths describe a
// complete prefix code.
//
// A lengths vector with no positive entries produces a valid, empty table:
// RFC 1951 section 3.2.7 permits a distance alphabet with a single code of
// length 0 when a block contains no back-references, and such a table is
// never queried by a well-formed stream.
func Build(lengths []int) (*Table, error) {
	t := &Table{}
	for _, l := range lengths {
		if l < 0 || l > MaxBits {
			return nil, fmt.Errorf("huffman: code length %d out of range", l)
		}
		if l > 0 {
			t.count[l]++
		}
	}

	total := 0
	for _, c := range t.count[1:] {
		total += c
	}
	if total == 0 {
		t.empty = true
		return t, nil
	}

	// Kraft completeness check: a complete code consumes exactly the 2^n
	// codeword space at every level. left tracks how much of that space
	// remains unassigned as we descend length by length.
	left := 1
	for l := 1; l <= MaxBits; l++ {
		left <<= 1
		left -= t.count[l]
		if left < 0 {
			return nil, fmt.Errorf("huffman: over-subscribed code at length %d", l)
		}
	}
	if left != 0 {
		return nil, fmt.Errorf("huffman: incomplete code (Kraft sum != 1)")
	}

	t.symbol = make([]uint16, 0, total)
	for l := 1; l <= MaxBits; l++ {
		for s, n := range lengths {
			if n == l {
				t.symbol = append(t.symbol, uint16(s))
			}
		}
	}
	return t, nil
}

// Decode reads one Huffman-coded symbol from r. Codewords are read
// most-significant-bit-first, one bit at a time, extending the candidate
// length until it falls within the range of codewords known to have that
// length.
func (t *Table) Decode(r *bitreader.Reader) (int, error) {
	if t.empty {
		return 0, fmt.Errorf("huffman: decode against empty table")
	}

	code, first, index := 0, 0, 0
	for l := 1; l <= MaxBits; l++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code |= int(bit)

		count := t.count[l]
		if code-first < count {
			return int(t.symbol[index+(code-first)]), nil
		}
		index += count
		first += count
		first <<= 1
		code <<= 1
	}
	return 0, fmt.Errorf("huffman: no code of length <= %d matched", MaxBits)
}
