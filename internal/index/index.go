// Package index builds and persists the Offset Table and the index
// file: magic header, the serialized MPH table, and the offset array
// that resolves an MPH slot back to a record's start offset.
//
// On-disk layout:
//
//	bytes 0..15   magic, e.g. "bam index: v000\0"
//	byte  16      reserved, currently 0
//	bytes 17..32  16 bytes of SipHash salt (Salt.MarshalBinary)
//	bytes 33..M-1 the MPH table's own MarshalBinary form
//	bytes M..end  N offsets, uint64 little-endian
//
// This departs from go-mph's own DBReader/DBWriter format (4-byte ASCII
// magic + strong SHA512-256 trailer + per-record siphash checksums) in
// one deliberate way: this index never stores values, only offsets --
// values live in the mmap'd data file, read straight off the span. The
// salt + algorithm-tag + MPH-table shape is adapted from dbwriter.go's
// own header, trimmed to what a pure offset index needs.
//
// (c) 2026
package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/StefanKarpinski/bam/internal/errs"
	"github.com/StefanKarpinski/bam/internal/mph"
	"github.com/StefanKarpinski/bam/internal/record"
)

const (
	magicPrefix = "bam index: v"
	magicLen    = 16 // 12-byte prefix + 3-digit version + NUL

	headerLen = magicLen + 1 + 16 // magic + reserved byte + salt
)

func magicFor(algo mph.Algorithm) string {
	switch algo {
	case mph.CHD:
		return "bam index: v000"
	case mph.BBHash:
		return "bam index: v001"
	default:
		return ""
	}
}

func algorithmForMagic(magic string) (mph.Algorithm, bool) {
	switch magic {
	case "bam index: v000":
		return mph.CHD, true
	case "bam index: v001":
		return mph.BBHash, true
	default:
		return 0, false
	}
}

// Index is an immutable, loaded or freshly built index: a minimal
// perfect hash table over the data file's keys, an offset table
// mapping each MPH slot to its record's start offset, and the salt
// used to reduce byte-string keys to the MPH's uint64 domain.
type Index struct {
	Table   mph.Table
	Offsets []uint64 // length Table.Len()
	Salt    mph.Salt
}

// N reports the number of keys the index was built over.
func (ix *Index) N() int { return ix.Table.Len() }

// Build scans span once via the Key Iterator, builds an MPH over its
// keys with the chosen algorithm, and constructs the Offset Table: a
// second pass (over the build-order offsets, not the span) that
// assigns each key's build-time offset to its MPH slot.
//
// Duplicate keys are detected here (not deferred to the MPH library,
// which -- per the C original -- may simply misbehave on them): two
// records whose keys reduce to the same SipHash value are reported as
// a BuildError naming the key, before the MPH is built. A second claim
// of one slot while filling the Offset Table is also a BuildError.
func Build(span []byte, algo mph.Algorithm, load float64) (*Index, error) {
	offs := record.Offsets(span)
	if len(offs) == 0 {
		return nil, errs.New(errs.BuildError, nil, "data file contains no key-value pairs")
	}

	salt := mph.NewSalt()

	var builder mph.Builder
	var err error
	switch algo {
	case mph.CHD:
		builder, err = mph.NewCHDBuilder(load)
	case mph.BBHash:
		builder, err = mph.NewBBHashBuilder(load)
	default:
		return nil, errs.New(errs.ConfigError, nil, fmt.Sprintf("unknown mph algorithm %v", algo))
	}
	if err != nil {
		return nil, errs.New(errs.BuildError, err, "construct mph builder")
	}

	keyHashes := make([]uint64, len(offs))
	seen := make(map[uint64]int, len(offs))
	for i, off := range offs {
		k, ok := record.Key(span, off)
		if !ok {
			return nil, errs.New(errs.BuildError, nil, fmt.Sprintf("record at offset %d has no key delimiter", off))
		}
		h := salt.HashKey(k)
		if prev, dup := seen[h]; dup {
			return nil, errs.New(errs.BuildError, nil,
				fmt.Sprintf("duplicate key %q (or hash collision) at offsets %d and %d", k, prev, off))
		}
		seen[h] = off
		keyHashes[i] = h
		if err := builder.Add(h); err != nil {
			return nil, errs.New(errs.BuildError, err, "add key to mph builder")
		}
	}

	table, err := builder.Freeze()
	if err != nil {
		return nil, errs.New(errs.BuildError, err, "freeze mph table")
	}

	n := table.Len()
	if n != len(offs) {
		return nil, errs.New(errs.BuildError, nil,
			fmt.Sprintf("mph table size %d does not match %d keys scanned", n, len(offs)))
	}

	offsets := make([]uint64, n)
	claimed := make([]bool, n)
	for i, off := range offs {
		slot, ok := table.Find(keyHashes[i])
		if !ok || int(slot) >= n {
			return nil, errs.New(errs.BuildError, nil,
				fmt.Sprintf("key at offset %d did not resolve to a valid slot", off))
		}
		if claimed[slot] {
			k, _ := record.Key(span, off)
			return nil, errs.New(errs.BuildError, nil,
				fmt.Sprintf("duplicate key %q (or mph collision) at offset %d", k, off))
		}
		claimed[slot] = true
		offsets[slot] = uint64(off)
	}

	return &Index{Table: table, Offsets: offsets, Salt: salt}, nil
}

// Save writes the index to path: magic, reserved byte, salt, the MPH
// table's own marshaled form, then the offset array as little-endian
// uint64s. Save is not atomic; a process killed mid-write leaves a
// file that fails magic/length checks on the next Load.
func (ix *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.New(errs.IndexError, err, fmt.Sprintf("create index file %q", path))
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	magic := magicFor(ix.Table.Algorithm())
	if magic == "" {
		return errs.New(errs.ConfigError, nil, "unknown mph algorithm, cannot save index")
	}

	var hdr [headerLen]byte
	copy(hdr[:magicLen], magic)
	// hdr[magicLen] is a reserved byte, left zero.
	copy(hdr[magicLen+1:], ix.Salt.MarshalBinary())

	if _, err := w.Write(hdr[:]); err != nil {
		return errs.New(errs.IndexError, err, "write index header")
	}

	if _, err := ix.Table.MarshalBinary(w); err != nil {
		return errs.New(errs.IndexError, err, "write mph table")
	}

	var obuf [8]byte
	for _, o := range ix.Offsets {
		binary.LittleEndian.PutUint64(obuf[:], o)
		if _, err := w.Write(obuf[:]); err != nil {
			return errs.New(errs.IndexError, err, "write offset table")
		}
	}

	if err := w.Flush(); err != nil {
		return errs.New(errs.IndexError, err, "flush index file")
	}
	return f.Close()
}

// Load reads a previously Saved index from path in full. The index
// file is small relative to the data file (one offset per key plus
// the MPH table), so Load reads it wholesale rather than mapping it.
func Load(path string) (*Index, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err // caller distinguishes not-found from corrupt
		}
		return nil, errs.New(errs.IndexError, err, fmt.Sprintf("read index file %q", path))
	}

	if len(buf) < headerLen {
		return nil, errs.New(errs.IndexError, nil, fmt.Sprintf("index file %q is too short", path))
	}

	magic := string(buf[:magicLen-1]) // drop trailing NUL for comparison
	if buf[magicLen-1] != 0 {
		return nil, errs.New(errs.IndexError, nil, fmt.Sprintf("index file %q: missing NUL terminator in magic", path))
	}

	algo, ok := algorithmForMagic(magic)
	if !ok {
		return nil, errs.New(errs.IndexError, nil, fmt.Sprintf("index file %q: unrecognized magic %q", path, magic))
	}

	salt, err := mph.UnmarshalSalt(buf[magicLen+1 : headerLen])
	if err != nil {
		return nil, errs.New(errs.IndexError, err, "read salt")
	}

	table, tableSize, err := mph.Load(algo, buf[headerLen:])
	if err != nil {
		return nil, errs.New(errs.IndexError, err, fmt.Sprintf("load mph table from %q", path))
	}

	n := table.Len()
	offsetsSize := n * 8
	offStart := headerLen + tableSize
	offBuf := buf[offStart:]
	if len(offBuf) != offsetsSize {
		return nil, errs.New(errs.IndexError, nil,
			fmt.Sprintf("index file %q: offset table size mismatch (exp %d, saw %d)", path, offsetsSize, len(offBuf)))
	}

	offsets := make([]uint64, n)
	for i := 0; i < n; i++ {
		offsets[i] = binary.LittleEndian.Uint64(offBuf[i*8:])
	}

	return &Index{Table: table, Offsets: offsets, Salt: salt}, nil
}
