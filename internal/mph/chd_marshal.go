// chd_marshal.go -- marshal/unmarshal a frozen CHD table
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2

package mph

import (
	"encoding/binary"
	"fmt"
	"io"
)

const chdHeaderSize = 16 // 2 x 64-bit words

// MarshalBinary encodes the table as:
//
//	byte 0    : format version (1)
//	byte 1    : seed width (1, 2 or 4)
//	bytes 2-3 : reserved
//	bytes 4-7 : seed count, little-endian
//	bytes 8-15: salt, little-endian
//	bytes 16- : seeds, packed at the declared width
func (c *chd) MarshalBinary(w io.Writer) (int, error) {
	var hdr [chdHeaderSize]byte

	hdr[0] = 1
	hdr[1] = c.seed.width()
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(c.Len()))
	binary.LittleEndian.PutUint64(hdr[8:], c.salt)

	nw, err := writeAll(w, hdr[:])
	if err != nil {
		return 0, err
	}

	m, err := c.seed.marshal(w)
	return nw + m, err
}

// loadCHD reads a table previously written by MarshalBinary. buf need
// not be mutable; 8-bit seeds borrow it directly, wider seeds are
// decoded into fresh slices. It may hold
// trailing bytes past the table; n reports how many leading bytes of
// buf the table actually consumed.
func loadCHD(buf []byte) (Table, int, error) {
	if len(buf) < chdHeaderSize {
		return nil, 0, ErrTooSmall
	}

	hdr := buf[:chdHeaderSize]
	body := buf[chdHeaderSize:]

	if hdr[0] != 1 {
		return nil, 0, fmt.Errorf("mph: chd: unsupported format version %d", hdr[0])
	}

	width := hdr[1]
	n := binary.LittleEndian.Uint32(hdr[4:8])
	salt := binary.LittleEndian.Uint64(hdr[8:])

	need := uint64(n) * uint64(width)
	if uint64(len(body)) < need {
		return nil, 0, ErrTooSmall
	}
	vals := body[:need]

	var s seeder
	switch width {
	case 1:
		s = &u8Seeder{seeds: vals}
	case 2:
		if len(vals)%2 != 0 {
			return nil, 0, fmt.Errorf("mph: chd: truncated 16-bit seed table")
		}
		s = &u16Seeder{seeds: bytesToU16s(vals)}
	case 4:
		if len(vals)%4 != 0 {
			return nil, 0, fmt.Errorf("mph: chd: truncated 32-bit seed table")
		}
		s = &u32Seeder{seeds: bytesToU32s(vals)}
	default:
		return nil, 0, fmt.Errorf("mph: chd: unknown seed width %d", width)
	}

	if s.length() != int(n) {
		return nil, 0, fmt.Errorf("mph: chd: seed count mismatch: header says %d, got %d", n, s.length())
	}

	return &chd{seed: s, salt: salt}, chdHeaderSize + int(need), nil
}
