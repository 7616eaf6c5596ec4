// salt.go - keyed hashing from byte-string keys down to the uint64
// domain the MPH constructions operate on.
//
// go-mph's own DBWriter (dbwriter.go) generates a 16 byte random salt
// per build and feeds it to siphash to checksum stored records. We
// reuse that same idea -- random salt, persisted, siphash -- one layer
// up: to turn TSV keys into the uint64 keys Add()/Find() expect. Unlike
// an unkeyed hash (go-mph's example CLI uses plain fasthash.Hash64 for
// this, fine for an offline batch job) a keyed PRF means an attacker
// who can submit arbitrary HTTP paths cannot predict bucket collisions.
//
// (c) 2026
package mph

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/dchest/siphash"
)

// Salt is the 128-bit SipHash key used to reduce a byte-string key to a
// uint64 for the MPH construction. It is generated once per index build
// and persisted in the index file so a reloaded index reproduces
// identical hashes.
type Salt struct {
	K0, K1 uint64
}

// NewSalt generates a fresh random salt from the system CSPRNG.
func NewSalt() Salt {
	return Salt{K0: rand64(), K1: rand64()}
}

// HashKey reduces key to the uint64 domain via SipHash-2-4.
func (s Salt) HashKey(key []byte) uint64 {
	return siphash.Hash(s.K0, s.K1, key)
}

// MarshalBinary writes the 16 byte salt, big-endian, matching the
// encoding go-mph itself uses for its header fields.
func (s Salt) MarshalBinary() []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], s.K0)
	binary.BigEndian.PutUint64(b[8:16], s.K1)
	return b[:]
}

// UnmarshalSalt reads a salt previously written by MarshalBinary.
func UnmarshalSalt(b []byte) (Salt, error) {
	if len(b) < 16 {
		return Salt{}, ErrTooSmall
	}
	return Salt{
		K0: binary.BigEndian.Uint64(b[0:8]),
		K1: binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

func rand64() uint64 {
	var b [8]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic("mph: can't read crypto/rand: " + err.Error())
	}
	return binary.BigEndian.Uint64(b[:])
}
