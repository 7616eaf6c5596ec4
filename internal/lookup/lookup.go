// Package lookup implements the Lookup Service: given a query key,
// resolve it through the MPH to a slot, resolve the slot through the
// Offset Table to a record, and verify the record's key actually
// equals the query before returning its value.
//
// An MPH is not a hash table -- it returns some slot for every input,
// and is only bijective on the key set it was built over. Skipping the
// equality check in Find would return an arbitrary record for an
// arbitrary query.
//
// (c) 2026
package lookup

import (
	"bytes"

	"github.com/StefanKarpinski/bam/internal/index"
	"github.com/StefanKarpinski/bam/internal/record"
)

// Service answers key lookups against an immutable data span and its
// index. Safe for concurrent use by any number of goroutines: every
// field is read-only after construction.
type Service struct {
	span []byte
	ix   *index.Index
}

// New builds a Service over span, governed by ix. ix must have been
// built or loaded from the same data file span came from.
func New(span []byte, ix *index.Index) *Service {
	return &Service{span: span, ix: ix}
}

// Find resolves query against the index and returns the matching
// record's value span (including its trailing LF), or ok=false if
// query is not a key in the data file.
func (s *Service) Find(query []byte) (value []byte, ok bool) {
	h := s.ix.Salt.HashKey(query)

	slot, found := s.ix.Table.Find(h)
	if !found || int(slot) >= len(s.ix.Offsets) {
		return nil, false
	}

	off := int(s.ix.Offsets[slot])
	keyLen, ok := record.KeyLen(s.span, off)
	if !ok {
		return nil, false
	}

	if len(query) != keyLen || !bytes.Equal(query, s.span[off:off+keyLen]) {
		return nil, false
	}

	val, ok := record.Value(s.span, off, keyLen)
	if !ok {
		return nil, false
	}
	return val, true
}
