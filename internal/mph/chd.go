// chd.go - fast minimal perfect hashing for massive key sets
//
// Implementation of CHD in http://cmph.sourceforge.net/papers/esa09.pdf -
// inspired by https://gist.github.com/pervognsen/b21f6dd13f4bcb4ff2123f0d78fcfd17
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2

package mph

import (
	"fmt"
	"sort"
)

// exclusive upper bound on the seeds (1, 2, ...) tried per bucket
// before giving up
const maxSeed uint32 = 65536 * 2

// chdBuilder accumulates uint64 keys for a Compress-Hash-Displace MPH.
type chdBuilder struct {
	keys []uint64
	salt uint64
	load float64
}

// NewCHDBuilder prepares a CHD construction with the given load factor
// (fraction of the table that will hold a key; 0.75-0.9 is a good
// range -- lower values build faster at the cost of a larger table).
func NewCHDBuilder(load float64) (Builder, error) {
	if load <= 0 || load > 1 {
		return nil, fmt.Errorf("mph: invalid chd load factor %f", load)
	}
	return &chdBuilder{
		keys: make([]uint64, 0, 1024),
		salt: rand64(),
		load: load,
	}, nil
}

func (c *chdBuilder) Add(key uint64) error {
	c.keys = append(c.keys, key)
	return nil
}

type chdBucket struct {
	slot uint64
	keys []uint64
}
type chdBuckets []chdBucket

func (b chdBuckets) Len() int           { return len(b) }
func (b chdBuckets) Less(i, j int) bool { return len(b[i].keys) > len(b[j].keys) }
func (b chdBuckets) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

// Freeze builds the constant-time lookup table using the CHD algorithm.
func (c *chdBuilder) Freeze() (Table, error) {
	m := uint64(float64(len(c.keys)) / c.load)
	m = nextpow2(m)

	buckets := make(chdBuckets, m)
	seeds := make([]uint32, m)
	for i := range buckets {
		buckets[i].slot = uint64(i)
	}

	for _, key := range c.keys {
		j := chdHash(0, key, m, c.salt)
		buckets[j].keys = append(buckets[j].keys, key)
	}

	occ := newBitVector(m)
	bOcc := newBitVector(m)

	sort.Sort(buckets)

	var maxseed uint32
	for i := range buckets {
		b := &buckets[i]
		placed := false
		for s := uint32(1); s < maxSeed; s++ {
			bOcc.Reset()

			collides := false
			for _, key := range b.keys {
				h := chdHash(s, key, m, c.salt)
				if occ.IsSet(h) || bOcc.IsSet(h) {
					collides = true
					break
				}
				bOcc.Set(h)
			}
			if collides {
				continue
			}

			occ.Merge(bOcc)
			seeds[b.slot] = s
			if s > maxseed {
				maxseed = s
			}
			placed = true
			break
		}

		if !placed {
			return nil, ErrMPHFail
		}
	}

	return &chd{
		seed: newSeeder(seeds, maxseed),
		salt: c.salt,
	}, nil
}

func newSeeder(s []uint32, max uint32) seeder {
	switch {
	case max < 256:
		return newU8Seeder(s)
	case max < 65536:
		return newU16Seeder(s)
	default:
		return newU32Seeder(s)
	}
}

// chd is a frozen CHD table over some key set.
type chd struct {
	seed seeder
	salt uint64
}

func (c *chd) Len() int             { return c.seed.length() }
func (c *chd) Algorithm() Algorithm { return CHD }

// Find returns a slot for key. The value is meaningful only for keys in
// the original build set -- callers must verify the key at the
// returned slot.
func (c *chd) Find(k uint64) (uint64, bool) {
	m := uint64(c.seed.length())
	h := chdHash(0, k, m, c.salt)
	return chdHash(c.seed.seed(h), k, m, c.salt), true
}

// hash key with seed, modulo sz (a power of 2, so modulo is a mask).
// Borrowed from Zi Long Tan's superfast hash.
func chdHash(seed uint32, key, sz, salt uint64) uint64 {
	const m uint64 = 0x880355f21e6d1965
	h := key

	h *= m
	h ^= mix(salt)
	h *= m
	h ^= mix(uint64(seed))
	h *= m

	return mix(h) & (sz - 1)
}

func nextpow2(n uint64) uint64 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
