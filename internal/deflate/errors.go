package deflate

import "fmt"

// TruncatedInputError reports that the bit or byte reader ran out of input
// mid-field. Offset is the byte index the reader had reached.
type TruncatedInputError struct {
	Offset int64
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("deflate: truncated input at byte offset %d", e.Offset)
}

// ReservedBlockTypeError reports a block header with BTYPE == 3.
type ReservedBlockTypeError struct{}

func (e *ReservedBlockTypeError) Error() string {
	return "deflate: reserved block type 3"
}

// StoredLengthMismatchError reports a stored block whose LEN/NLEN fields
// are not one's complements of each other.
type StoredLengthMismatchError struct {
	Len  uint16
	NLen uint16
}

func (e *StoredLengthMismatchError) Error() string {
	return fmt.Sprintf("deflate: stored block length mismatch: LEN=%d NLEN=%d", e.Len, e.NLen)
}

// IncompleteHuffmanError reports that a declared code-length vector fails
// the Kraft-equality completeness check, for the named alphabet.
type IncompleteHuffmanError struct {
	Alphabet string
	Reason   string
}

func (e *IncompleteHuffmanError) Error() string {
	return fmt.Sprintf("deflate: incomplete Huffman code for %s alphabet: %s", e.Alphabet, e.Reason)
}

// InvalidHuffmanSymbolError reports a decoded literal/length value of 286
// or 287, or a distance index of 30 or more.
type InvalidHuffmanSymbolError struct {
	Symbol int
	Kind   string // "literal/length", "distance" or "code-length"
}

func (e *InvalidHuffmanSymbolError) Error() string {
	return fmt.Sprintf("deflate: invalid %s symbol %d", e.Kind, e.Symbol)
}

// InvalidBackReferenceError reports a back-reference whose distance is
// zero or reaches before the start of the output produced so far.
type InvalidBackReferenceError struct {
	Distance  int
	OutputLen int
}

func (e *InvalidBackReferenceError) Error() string {
	return fmt.Sprintf("deflate: back-reference distance %d exceeds %d bytes of output", e.Distance, e.OutputLen)
}
