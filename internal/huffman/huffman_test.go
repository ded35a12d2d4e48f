package huffman

import (
	"testing"

	"github.com/coreospkg/gzinflate/internal/bitreader"
)

// writeCodeMSB packs an n-bit codeword into buf most-significant-bit
// first, continuing from whatever partial byte bitOff points into.
type bitWriter struct {
	buf    []byte
	bitOff uint
}

func (w *bitWriter) writeBit(b byte) {
	if w.bitOff == 0 {
		w.buf = append(w.buf, 0)
	}
	w.buf[len(w.buf)-1] |= (b & 1) << w.bitOff
	w.bitOff++
	if w.bitOff == 8 {
		w.bitOff = 0
	}
}

func (w *bitWriter) writeCodeMSB(code uint32, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		w.writeBit(byte((code >> uint(i)) & 1))
	}
}

func TestBuildRejectsOversubscribedCode(t *testing.T) {
	// Three symbols of length 1 cannot coexist: only two length-1
	// codewords exist (Kraft sum 3/2 > 1).
	_, err := Build([]int{1, 1, 1})
	if err == nil {
		t.Fatal("expected an error for an over-subscribed code")
	}
}

func TestBuildRejectsIncompleteCode(t *testing.T) {
	// A single length-1 symbol leaves half the code space unclaimed.
	_, err := Build([]int{1, 0, 0})
	if err == nil {
		t.Fatal("expected an error for an incomplete code")
	}
}

func TestBuildAllZeroLengthsIsEmptyTable(t *testing.T) {
	tbl, err := Build([]int{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.empty {
		t.Fatal("expected an empty table")
	}
}

func TestBuildAndDecodeCompleteCode(t *testing.T) {
	// Four symbols, all length 2, form a complete code (4 * 1/4 = 1).
	lengths := []int{2, 2, 2, 2}
	tbl, err := Build(lengths)
	if err != nil {
		t.Fatal(err)
	}

	// Canonical codes for four length-2 symbols, in symbol order: 00, 01,
	// 10, 11.
	for sym := 0; sym < 4; sym++ {
		w := &bitWriter{}
		w.writeCodeMSB(uint32(sym), 2)
		got, err := tbl.Decode(bitreader.New(w.buf))
		if err != nil {
			t.Fatalf("symbol %d: %v", sym, err)
		}
		if got != sym {
			t.Fatalf("symbol %d: decoded %d", sym, got)
		}
	}
}

func TestBuildMixedLengthCode(t *testing.T) {
	// One symbol at length 1 (half the space), two at length 2 (the rest):
	// canonical order is by length then index, so symbol 0 (len1) gets
	// code "0"; symbols 1,2 (len2) get codes "10","11".
	lengths := []int{1, 2, 2}
	tbl, err := Build(lengths)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		code uint32
		n    uint
		want int
	}{
		{0b0, 1, 0},
		{0b10, 2, 1},
		{0b11, 2, 2},
	}
	for _, c := range cases {
		w := &bitWriter{}
		w.writeCodeMSB(c.code, c.n)
		got, err := tbl.Decode(bitreader.New(w.buf))
		if err != nil {
			t.Fatalf("code %b: %v", c.code, err)
		}
		if got != c.want {
			t.Fatalf("code %b: got %d, want %d", c.code, got, c.want)
		}
	}
}

func TestDecodeAgainstEmptyTableErrors(t *testing.T) {
	tbl, err := Build([]int{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Decode(bitreader.New([]byte{0xFF})); err == nil {
		t.Fatal("expected an error decoding against an empty table")
	}
}

func TestBuildRejectsOutOfRangeLength(t *testing.T) {
	if _, err := Build([]int{MaxBits + 1}); err == nil {
		t.Fatal("expected an error for a too-long code length")
	}
	if _, err := Build([]int{-1}); err == nil {
		t.Fatal("expected an error for a negative code length")
	}
}
