package deflate

import (
	"sync"

	"github.com/coreospkg/gzinflate/internal/huffman"
)

const (
	endOfBlock      = 256
	lengthCodeStart = 257
	maxLitSymbol    = 287
	maxDistSymbol   = 29
)

// lengthBase and lengthExtra implement RFC 1951 section 3.2.5: symbol
// v-257 indexes both tables to recover the match length.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra recover the match distance from a decoded
// distance symbol.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the fixed permutation (RFC 1951 section 3.2.7) that
// maps the HCLEN+4 transmitted 3-bit lengths onto the 19-symbol code-length
// alphabet.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var (
	fixedOnce      sync.Once
	fixedLitTable  *huffman.Table
	fixedDistTable *huffman.Table
	fixedTablesErr error
)

// initFixedTables builds the RFC 1951 section 3.2.6 fixed literal/length
// and distance tables exactly once, the way compress/flate's
// fixedHuffmanDecoderInit (and coreos/pkg/zran/flate's copy of it) do with
// sync.Once -- these tables never change, so every fixed-Huffman block in
// every call to Inflate shares the same two Tables.
func initFixedTables() {
	fixedOnce.Do(func() {
		lengths := make([]int, 288)
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < 288; i++ {
			lengths[i] = 8
		}
		fixedLitTable, fixedTablesErr = huffman.Build(lengths)
		if fixedTablesErr != nil {
			return
		}

		// The fixed distance code is a flat 5-bit code over 32 symbols
		// (RFC 1951 3.2.6), which makes it complete. Symbols 30 and 31 get
		// codewords but are rejected by inflateHuffmanBlock when decoded.
		distLengths := make([]int, 32)
		for i := range distLengths {
			distLengths[i] = 5
		}
		fixedDistTable, fixedTablesErr = huffman.Build(distLengths)
	})
}
