// bbhash.go - fast minimal perfect hashing for massive key sets
//
// Implements the BBHash algorithm: https://arxiv.org/abs/1702.03154
// Inspired by D Gryski's go-boomphf (https://github.com/dgryski/go-boomphf)
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2

package mph

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"sync"
)

// bbHash is a frozen BBHash table: one bitvector per level, plus a
// running rank so Find doesn't have to recompute popcount prefixes.
type bbHash struct {
	bits  []*bitVector
	ranks []uint64
	salt  uint64
	n     int
}

type bbState struct {
	sync.Mutex

	A     *bitVector
	coll  *bitVector
	redo  []uint64
	gamma float64

	lvl uint32
	bb  *bbHash
}

// gamma is the bitvector size expansion factor; empirically 2.0 balances
// speed and space.
const defaultGamma float64 = 2.0

// maxLevel bounds retries; each level exponentially reduces collision
// probability, so this is generous headroom, not a typical outcome.
const maxLevel uint32 = 4000

// minParallelKeys is the key-count threshold above which BBHash shards
// the build across runtime.NumCPU() goroutines.
const minParallelKeys int = 20000

type bbHashBuilder struct {
	keys  []uint64
	gamma float64
}

// NewBBHashBuilder prepares a BBHash construction. gamma is the
// bitvector expansion factor from the paper; >= 2.0 is recommended,
// larger values trade table size for a lower chance of needing extra
// levels.
func NewBBHashBuilder(gamma float64) (Builder, error) {
	if gamma <= 1.0 {
		gamma = defaultGamma
	}
	return &bbHashBuilder{keys: make([]uint64, 0, 1024), gamma: gamma}, nil
}

func (b *bbHashBuilder) Add(key uint64) error {
	b.keys = append(b.keys, key)
	return nil
}

// Freeze builds the table, switching to a sharded concurrent algorithm
// once the key count passes minParallelKeys.
func (b *bbHashBuilder) Freeze() (Table, error) {
	bb := &bbHash{salt: rand64(), n: len(b.keys)}
	s := bb.newState(b.gamma)

	var err error
	if bb.n > minParallelKeys {
		err = s.concurrent(b.keys)
	} else {
		err = s.singleThread(b.keys)
	}
	if err != nil {
		return nil, err
	}
	return bb, nil
}

func (bb *bbHash) Len() int             { return bb.n }
func (bb *bbHash) Algorithm() Algorithm { return BBHash }

// Find returns a slot for k by walking levels until one has the bit set.
func (bb *bbHash) Find(k uint64) (uint64, bool) {
	for lvl, bv := range bb.bits {
		i := bbHashRound(k, bb.salt, uint32(lvl)) % bv.Size()
		if !bv.IsSet(i) {
			continue
		}
		rank := 1 + bb.ranks[lvl] + bv.Rank(i)
		return rank - 1, true
	}
	return 0, false
}

func (bb *bbHash) DumpMeta(w io.Writer) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "bbhash: salt %#x; %d levels\n", bb.salt, len(bb.bits))
	for i, bv := range bb.bits {
		fmt.Fprintf(&b, "  %d: %d bits (%s)\n", i, bv.Size(), humansize(bv.Words()*8))
	}
	w.Write(b.Bytes())
}

func (bb *bbHash) bvSize(gamma float64) uint64 {
	return uint64(float64(bb.n) * gamma)
}

func (bb *bbHash) newState(gamma float64) *bbState {
	sz := bb.bvSize(gamma)
	return &bbState{
		A:     newBitVector(sz),
		coll:  newBitVector(sz),
		redo:  make([]uint64, 0, sz),
		gamma: gamma,
		bb:    bb,
	}
}

func (s *bbState) singleThread(keys []uint64) error {
	A := s.A
	for {
		bbPreprocess(s, keys)
		A.Reset()
		bbAssign(s, keys)

		keys, A = s.nextLevel()
		if keys == nil {
			break
		}
		if s.lvl > maxLevel {
			return ErrMPHFail
		}
	}
	s.bb.preComputeRank()
	return nil
}

// concurrent runs the two-phase BBHash round across runtime.NumCPU() shards.
// entry: len(keys) > minParallelKeys
func (s *bbState) concurrent(keys []uint64) error {
	ncpu := runtime.NumCPU()
	A := s.A

	for {
		nkey := uint64(len(keys))
		z := nkey / uint64(ncpu)
		r := nkey % uint64(ncpu)

		var wg sync.WaitGroup
		wg.Add(ncpu)
		for i := 0; i < ncpu; i++ {
			x := z * uint64(i)
			y := x + z
			if i == ncpu-1 {
				y += r
			}
			go func(x, y uint64) {
				bbPreprocess(s, keys[x:y])
				wg.Done()
			}(x, y)
		}
		wg.Wait()

		A.Reset()
		wg.Add(ncpu)
		for i := 0; i < ncpu; i++ {
			x := z * uint64(i)
			y := x + z
			if i == ncpu-1 {
				y += r
			}
			go func(x, y uint64) {
				bbAssign(s, keys[x:y])
				wg.Done()
			}(x, y)
		}
		wg.Wait()

		keys, A = s.nextLevel()
		if keys == nil {
			break
		}
		if len(keys) < minParallelKeys {
			return s.singleThread(keys)
		}
		if s.lvl > maxLevel {
			return ErrMPHFail
		}
	}

	s.bb.preComputeRank()
	return nil
}

func bbPreprocess(s *bbState, keys []uint64) {
	A, coll, salt, sz := s.A, s.coll, s.bb.salt, s.A.Size()
	for _, k := range keys {
		i := bbHashRound(k, salt, s.lvl) % sz
		if coll.IsSet(i) {
			continue
		}
		if A.IsSet(i) {
			coll.Set(i)
			continue
		}
		A.Set(i)
	}
}

func bbAssign(s *bbState, keys []uint64) {
	A, coll, salt, sz := s.A, s.coll, s.bb.salt, s.A.Size()
	redo := make([]uint64, 0, len(keys)/4)
	for _, k := range keys {
		i := bbHashRound(k, salt, s.lvl) % sz
		if coll.IsSet(i) {
			redo = append(redo, k)
			continue
		}
		A.Set(i)
	}
	if len(redo) > 0 {
		s.Lock()
		s.redo = append(s.redo, redo...)
		s.Unlock()
	}
}

// nextLevel always runs from a single-threaded synchronization point.
func (s *bbState) nextLevel() ([]uint64, *bitVector) {
	s.bb.bits = append(s.bb.bits, s.A)
	s.A = nil

	keys := s.redo
	if len(keys) == 0 {
		return nil, nil
	}

	s.redo = s.redo[:0]
	s.A = newBitVector(s.bb.bvSize(s.gamma))
	s.coll.Reset()
	s.lvl++
	return keys, s.A
}

func (bb *bbHash) preComputeRank() {
	var pop uint64
	bb.ranks = make([]uint64, len(bb.bits))
	for l, bv := range bb.bits {
		bb.ranks[l] = pop
		pop += bv.ComputeRank()
	}
}

// one round of Zi Long Tan's superfast hash, keyed by level
func bbHashRound(key, salt uint64, lvl uint32) uint64 {
	const m uint64 = 0x880355f21e6d1965
	h := m

	h ^= mix(key)
	h *= m
	h ^= mix(salt)
	h *= m
	h ^= mix(uint64(lvl))
	h *= m
	return mix(h)
}
