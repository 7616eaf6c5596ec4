// bbhash_marshal.go - marshal/unmarshal a frozen BBHash table
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

// MarshalBinary encodes the table as:
//
//	byte 0     : format version (1)
//	bytes 1-3  : reserved
//	bytes 4-7  : level count, little-endian
//	bytes 8-15 : salt, little-endian
//	bytes 16-  : each level's bitvector, consecutively
func (bb *bbHash) MarshalBinary(w io.Writer) (int, error) {
	var hdr [16]byte

	le := binary.LittleEndian
	hdr[0] = 1
	le.PutUint32(hdr[4:8], uint32(len(bb.bits)))
	le.PutUint64(hdr[8:], bb.salt)

	ew := newErrWriter(w)
	ew.write(hdr[:])
	for _, bv := range bb.bits {
		m, err := bv.MarshalBinary(ew)
		ew.n += m
		if err != nil {
			ew.err = err
			break
		}
	}

	return ew.n, ew.err
}

// loadBBHash reads a table previously written by MarshalBinary. buf
// may hold trailing bytes past the table; n reports how many leading
// bytes of buf the table actually consumed.
func loadBBHash(buf []byte) (Table, int, error) {
	if len(buf) < 16 {
		return nil, 0, ErrTooSmall
	}

	le := binary.LittleEndian
	ver := buf[0]
	if ver != 1 {
		return nil, 0, fmt.Errorf("mph: bbhash: unsupported format version %d", ver)
	}

	levels := le.Uint32(buf[4:8])
	salt := le.Uint64(buf[8:16])
	if levels == 0 || levels > maxLevel {
		return nil, 0, fmt.Errorf("mph: bbhash: implausible level count %d", levels)
	}

	bb := &bbHash{bits: make([]*bitVector, levels), salt: salt}

	consumed := 16
	rest := buf[16:]
	for i := uint32(0); i < levels; i++ {
		bv, n, err := unmarshalBitVector(rest)
		if err != nil {
			return nil, 0, err
		}
		bb.bits[i] = bv
		rest = rest[n:]
		consumed += int(n)
	}

	// go-mph's own bbHash never persists N directly (its DBReader tracks
	// nkeys separately in the surrounding DB header). Our index format
	// needs Table.Len() to work right after a bare load, so recover N
	// here: the population count across all level bitvectors is exactly
	// the number of keys that successfully claimed a slot.
	bb.preComputeRank()
	if len(bb.ranks) > 0 {
		last := len(bb.bits) - 1
		bb.n = int(bb.ranks[last] + bb.bits[last].ComputeRank())
	}
	return bb, consumed, nil
}
