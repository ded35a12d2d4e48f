// Package gzip parses a single gzip member (RFC 1952) held entirely in
// memory, inflates its DEFLATE payload, and verifies the trailer's CRC-32
// and ISIZE fields against the result.
package gzip

import (
	"time"

	"github.com/coreospkg/gzinflate/internal/corelog"
	"github.com/coreospkg/gzinflate/internal/crc32check"
	"github.com/coreospkg/gzinflate/internal/deflate"
)

var plog = corelog.NewPackageLogger("gzinflate", "gzip")

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 0x08

	flagText     = 1 << 0
	flagHdrCrc   = 1 << 1
	flagExtra    = 1 << 2
	flagName     = 1 << 3
	flagComment  = 1 << 4
	flagReserved = 0xE0 // bits 5..7
)

// minMemberLen is the 10-byte header with no optional fields plus the
// 8-byte trailer, with no payload bytes counted. A member this short has
// an empty DEFLATE payload, which the inflater then rejects as truncated.
const minMemberLen = 18

// Header carries the gzip header metadata a member declares alongside
// its compressed payload, mirroring the fields coreos/pkg/gzran/gzip
// already exposes on its streaming Reader.
type Header struct {
	Name    string
	Comment string
	Extra   []byte
	ModTime time.Time
	OS      byte
}

// cursor walks data without copying, tracking how far parsing has
// progressed for use in truncation errors.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) take(n int) ([]byte, bool) {
	if n < 0 || c.remaining() < n {
		return nil, false
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

func (c *cursor) u16() (uint16, bool) {
	b, ok := c.take(2)
	if !ok {
		return 0, false
	}
	return uint16(b[0]) | uint16(b[1])<<8, true
}

func (c *cursor) u32() (uint32, bool) {
	b, ok := c.take(4)
	if !ok {
		return 0, false
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

// cString reads bytes up to and including the next NUL, returning the
// bytes before it.
func (c *cursor) cString() ([]byte, bool) {
	start := c.pos
	for c.pos < len(c.data) {
		if c.data[c.pos] == 0 {
			s := c.data[start:c.pos]
			c.pos++
			return s, true
		}
		c.pos++
	}
	return nil, false
}

// Decode parses the complete gzip member data, inflates its DEFLATE
// payload, and verifies the trailer. It returns the decompressed bytes
// and the parsed header.
func Decode(data []byte) ([]byte, *Header, error) {
	if len(data) < minMemberLen {
		return nil, nil, &deflate.TruncatedInputError{Offset: int64(len(data))}
	}

	c := &cursor{data: data}
	hdrBytes, _ := c.take(10)
	if hdrBytes[0] != gzipID1 || hdrBytes[1] != gzipID2 || hdrBytes[2] != gzipDeflate {
		return nil, nil, &BadMagicError{Got: [3]byte{hdrBytes[0], hdrBytes[1], hdrBytes[2]}}
	}
	flg := hdrBytes[3]
	if flg&flagReserved != 0 {
		return nil, nil, &UnsupportedFlagError{Flags: flg}
	}

	mtime := uint32(hdrBytes[4]) | uint32(hdrBytes[5])<<8 | uint32(hdrBytes[6])<<16 | uint32(hdrBytes[7])<<24
	// hdrBytes[8] is XFL, not surfaced.
	osByte := hdrBytes[9]

	hdr := &Header{
		ModTime: time.Unix(int64(mtime), 0),
		OS:      osByte,
	}

	if flg&flagExtra != 0 {
		n, ok := c.u16()
		if !ok {
			return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
		}
		extra, ok := c.take(int(n))
		if !ok {
			return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
		}
		hdr.Extra = extra
		plog.Verbosef("skipped %d-byte FEXTRA field", n)
	}

	if flg&flagName != 0 {
		name, ok := c.cString()
		if !ok {
			return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
		}
		hdr.Name = string(name)
		plog.Verbosef("read FNAME %q", hdr.Name)
	}

	if flg&flagComment != 0 {
		comment, ok := c.cString()
		if !ok {
			return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
		}
		hdr.Comment = string(comment)
		plog.Verbosef("skipped FCOMMENT field of length %d", len(comment))
	}

	if flg&flagHdrCrc != 0 {
		if _, ok := c.u16(); !ok {
			return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
		}
	}

	if c.remaining() < 8 {
		return nil, nil, &deflate.TruncatedInputError{Offset: int64(c.pos)}
	}
	payload := data[c.pos : len(data)-8]
	trailer := data[len(data)-8:]
	wantCRC := uint32(trailer[0]) | uint32(trailer[1])<<8 | uint32(trailer[2])<<16 | uint32(trailer[3])<<24
	wantSize := uint32(trailer[4]) | uint32(trailer[5])<<8 | uint32(trailer[6])<<16 | uint32(trailer[7])<<24

	out, err := deflate.Inflate(payload)
	if err != nil {
		return nil, nil, err
	}

	if gotSize := crc32check.Size(out); gotSize != wantSize {
		return nil, nil, &LengthMismatchError{Got: gotSize, Want: wantSize}
	}
	if gotCRC := crc32check.Checksum(out); gotCRC != wantCRC {
		return nil, nil, &CrcMismatchError{Got: gotCRC, Want: wantCRC}
	}

	return out, hdr, nil
}
