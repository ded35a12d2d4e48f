// Package deflate implements RFC 1951 DEFLATE decompression over a
// complete in-memory payload: stored, fixed-Huffman, and dynamic-Huffman
// blocks, back-reference copying, and the dynamic code-length alphabet.
package deflate

import (
	"github.com/coreospkg/gzinflate/internal/bitreader"
	"github.com/coreospkg/gzinflate/internal/corelog"
	"github.com/coreospkg/gzinflate/internal/huffman"
)

var plog = corelog.NewPackageLogger("gzinflate", "deflate")

// Inflate decompresses a complete raw DEFLATE byte stream (the payload
// between a gzip member's header and its CRC32/ISIZE trailer) and returns
// the uncompressed bytes.
func Inflate(payload []byte) ([]byte, error) {
	r := bitreader.New(payload)
	var out []byte

	for {
		final, err := r.ReadBit()
		if err != nil {
			return nil, &TruncatedInputError{Offset: r.ByteOffset()}
		}
		btype, err := r.ReadBitsLSB(2)
		if err != nil {
			return nil, &TruncatedInputError{Offset: r.ByteOffset()}
		}

		switch btype {
		case 0:
			plog.Verbosef("block type 0 (stored), final=%t", final == 1)
			out, err = inflateStored(r, out)
		case 1:
			plog.Verbosef("block type 1 (fixed Huffman), final=%t", final == 1)
			out, err = inflateHuffmanBlock(r, out, true)
		case 2:
			plog.Verbosef("block type 2 (dynamic Huffman), final=%t", final == 1)
			out, err = inflateHuffmanBlock(r, out, false)
		case 3:
			plog.Verbosef("block type 3 (reserved), final=%t", final == 1)
			err = &ReservedBlockTypeError{}
		}
		if err != nil {
			return nil, err
		}

		if final == 1 {
			return out, nil
		}
	}
}

// inflateStored handles BTYPE=0: after discarding the remaining bits of
// the current byte, LEN/NLEN are read as a one's-complement pair followed
// by LEN literal bytes (RFC 1951 section 3.2.4).
func inflateStored(r *bitreader.Reader, out []byte) ([]byte, error) {
	r.AlignToByte()

	lenBytes, err := r.ReadBytes(4)
	if err != nil {
		return nil, &TruncatedInputError{Offset: r.ByteOffset()}
	}
	length := uint16(lenBytes[0]) | uint16(lenBytes[1])<<8
	nlength := uint16(lenBytes[2]) | uint16(lenBytes[3])<<8
	if length != ^nlength {
		return nil, &StoredLengthMismatchError{Len: length, NLen: nlength}
	}

	data, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, &TruncatedInputError{Offset: r.ByteOffset()}
	}
	return append(out, data...), nil
}

// inflateHuffmanBlock handles BTYPE=1 and BTYPE=2. For fixed blocks the
// RFC 1951 section 3.2.6 tables are reused across every call via
// sync.Once; for dynamic blocks the tables are first read off the wire
// per RFC 1951 section 3.2.7.
func inflateHuffmanBlock(r *bitreader.Reader, out []byte, fixed bool) ([]byte, error) {
	var litTable, distTable *huffman.Table

	if fixed {
		initFixedTables()
		if fixedTablesErr != nil {
			return nil, fixedTablesErr
		}
		litTable, distTable = fixedLitTable, fixedDistTable
	} else {
		var err error
		litTable, distTable, err = readDynamicTables(r)
		if err != nil {
			return nil, err
		}
	}

	for {
		sym, err := litTable.Decode(r)
		if err != nil {
			return nil, &TruncatedInputError{Offset: r.ByteOffset()}
		}

		switch {
		case sym < endOfBlock:
			out = append(out, byte(sym))
		case sym == endOfBlock:
			return out, nil
		case sym <= maxLitSymbol:
			idx := sym - lengthCodeStart
			if idx >= len(lengthBase) {
				return nil, &InvalidHuffmanSymbolError{Symbol: sym, Kind: "literal/length"}
			}
			extra, err := r.ReadBitsLSB(uint(lengthExtra[idx]))
			if err != nil {
				return nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			length := lengthBase[idx] + int(extra)

			distSym, err := distTable.Decode(r)
			if err != nil {
				return nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			if distSym > maxDistSymbol {
				return nil, &InvalidHuffmanSymbolError{Symbol: distSym, Kind: "distance"}
			}
			distExtraBits, err := r.ReadBitsLSB(uint(distExtra[distSym]))
			if err != nil {
				return nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			distance := distBase[distSym] + int(distExtraBits)

			if distance <= 0 || distance > len(out) {
				return nil, &InvalidBackReferenceError{Distance: distance, OutputLen: len(out)}
			}

			// Copy byte by byte: distance may be smaller than length, in
			// which case the match legitimately reads bytes this same
			// loop is still writing (e.g. a run of "aaaaa").
			start := len(out) - distance
			for i := 0; i < length; i++ {
				out = append(out, out[start+i])
			}
		default:
			return nil, &InvalidHuffmanSymbolError{Symbol: sym, Kind: "literal/length"}
		}
	}
}

// readDynamicTables reads HLIT, HDIST, HCLEN, the code-length alphabet's
// own lengths, and then the RLE-compressed literal/length and distance
// code lengths, per RFC 1951 section 3.2.7.
func readDynamicTables(r *bitreader.Reader) (lit, dist *huffman.Table, err error) {
	hlit, err := r.ReadBitsLSB(5)
	if err != nil {
		return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
	}
	hdist, err := r.ReadBitsLSB(5)
	if err != nil {
		return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
	}
	hclen, err := r.ReadBitsLSB(4)
	if err != nil {
		return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
	}

	numLit := int(hlit) + 257
	numDist := int(hdist) + 1
	numClen := int(hclen) + 4

	clLengths := make([]int, 19)
	for i := 0; i < numClen; i++ {
		v, err := r.ReadBitsLSB(3)
		if err != nil {
			return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}

	clTable, err := huffman.Build(clLengths)
	if err != nil {
		return nil, nil, &IncompleteHuffmanError{Alphabet: "code-length", Reason: err.Error()}
	}

	allLengths := make([]int, 0, numLit+numDist)
	for len(allLengths) < numLit+numDist {
		sym, err := clTable.Decode(r)
		if err != nil {
			return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
		}

		switch {
		case sym <= 15:
			allLengths = append(allLengths, sym)
		case sym == 16:
			if len(allLengths) == 0 {
				// Rejected rather than treated as a repeat of an implied
				// zero: there is no preceding length to repeat.
				return nil, nil, &IncompleteHuffmanError{
					Alphabet: "code-length",
					Reason:   "repeat operator 16 with no preceding length",
				}
			}
			repeatCount, err := r.ReadBitsLSB(2)
			if err != nil {
				return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			prev := allLengths[len(allLengths)-1]
			for i := 0; i < int(repeatCount)+3; i++ {
				allLengths = append(allLengths, prev)
			}
		case sym == 17:
			zeroCount, err := r.ReadBitsLSB(3)
			if err != nil {
				return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			for i := 0; i < int(zeroCount)+3; i++ {
				allLengths = append(allLengths, 0)
			}
		case sym == 18:
			zeroCount, err := r.ReadBitsLSB(7)
			if err != nil {
				return nil, nil, &TruncatedInputError{Offset: r.ByteOffset()}
			}
			for i := 0; i < int(zeroCount)+11; i++ {
				allLengths = append(allLengths, 0)
			}
		default:
			return nil, nil, &InvalidHuffmanSymbolError{Symbol: sym, Kind: "code-length"}
		}
	}
	if len(allLengths) != numLit+numDist {
		return nil, nil, &IncompleteHuffmanError{
			Alphabet: "code-length",
			Reason:   "repeat operator overran the declared length counts",
		}
	}

	lit, err = huffman.Build(allLengths[:numLit])
	if err != nil {
		return nil, nil, &IncompleteHuffmanError{Alphabet: "literal/length", Reason: err.Error()}
	}
	dist, err = huffman.Build(allLengths[numLit:])
	if err != nil {
		return nil, nil, &IncompleteHuffmanError{Alphabet: "distance", Reason: err.Error()}
	}
	return lit, dist, nil
}
