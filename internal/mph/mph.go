// mph.go - minimal perfect hash construction used by the index builder
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.

// Package mph builds and serves a minimal perfect hash function (MPH)
// over a set of uint64 keys. Two constructions are available: CHD
// (Compress Hash Displace) and BBHash. Both implement the same Builder
// and Table interfaces, so the caller (internal/index) picks one at
// build time and records which one it picked in the index file's
// magic tag.
//
// Callers are responsible for reducing their real (byte-string) keys to
// uint64 before calling Add; see Salt.HashKey.
package mph

import "io"

// Builder accumulates keys before Freeze produces a queryable Table.
type Builder interface {
	// Add a new key to the builder.
	Add(key uint64) error

	// Freeze constructs the minimal perfect hash over all added keys.
	Freeze() (Table, error)
}

// Table is a frozen minimal perfect hash over some key set K of size
// Len(). Find is meaningful only for keys in K: for any other input it
// returns some slot in [0, Len()) and true, or false if the algorithm
// can tell the key is out of range. Either way, callers MUST verify the
// key at the returned slot before trusting it.
type Table interface {
	// Find returns a slot in [0, Len()) for key, and whether the
	// algorithm was able to produce one at all.
	Find(key uint64) (uint64, bool)

	// Len returns N, the number of keys the table was built over.
	Len() int

	// MarshalBinary writes the table in the algorithm's own on-disk
	// form to w.
	MarshalBinary(w io.Writer) (int, error)

	// Algorithm identifies which construction produced this table.
	Algorithm() Algorithm
}

// Algorithm identifies an MPH construction. The index file records it
// through its magic tag (v000 for CHD, v001 for BBHash) so the loader
// knows which unmarshaler to run.
type Algorithm byte

const (
	CHD Algorithm = iota
	BBHash
)

func (a Algorithm) String() string {
	switch a {
	case CHD:
		return "chd"
	case BBHash:
		return "bbhash"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a CLI-friendly name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "chd", "":
		return CHD, nil
	case "bbhash":
		return BBHash, nil
	default:
		return 0, errUnknownAlgorithm(name)
	}
}

var _ Builder = &chdBuilder{}
var _ Table = &chd{}
var _ Builder = &bbHashBuilder{}
var _ Table = &bbHash{}
