package bitreader

import "testing"

func TestReadBitsLSBRoundTrip(t *testing.T) {
	// Pack v across n bits, LSB-first, then read it back.
	for n := uint(0); n <= 16; n++ {
		max := uint32(1) << n
		for _, v := range []uint32{0, max / 2, max - 1} {
			if n == 0 && v != 0 {
				continue
			}
			buf := make([]byte, 4)
			for i := uint(0); i < n; i++ {
				bit := byte((v >> i) & 1)
				buf[i/8] |= bit << (i % 8)
			}
			r := New(buf)
			got, err := r.ReadBitsLSB(n)
			if err != nil {
				t.Fatalf("n=%d v=%d: %v", n, v, err)
			}
			if uint32(got) != v {
				t.Fatalf("n=%d: got %d, want %d", n, got, v)
			}
		}
	}
}

func TestReadBitsMSBPacksHighBitFirst(t *testing.T) {
	// 0b101 read MSB-first from a stream whose first three bits (LSB-first
	// within the byte) are 1,0,1 should yield the 3-bit value 0b101 = 5.
	r := New([]byte{0b0000_0101})
	got, err := r.ReadBitsMSB(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b101 {
		t.Fatalf("got %b, want %b", got, 0b101)
	}
}

func TestAlignToByte(t *testing.T) {
	r := New([]byte{0xFF, 0xAB})
	if _, err := r.ReadBitsLSB(3); err != nil {
		t.Fatal(err)
	}
	r.AlignToByte()
	if !r.Aligned() {
		t.Fatal("expected aligned reader")
	}
	r.AlignToByte() // idempotent
	b, err := r.ReadBytes(1)
	if err != nil {
		t.Fatal(err)
	}
	if b[0] != 0xAB {
		t.Fatalf("got %x, want %x", b[0], 0xAB)
	}
}

func TestReadPastEndIsTruncated(t *testing.T) {
	r := New([]byte{0x01})
	if _, err := r.ReadBitsLSB(8); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadBit(); err != ErrTruncated {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}

func TestReadBytesRequiresAlignment(t *testing.T) {
	r := New([]byte{0xFF, 0xFF})
	if _, err := r.ReadBit(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadBytes(1); err == nil {
		t.Fatal("expected error on unaligned ReadBytes")
	}
}
