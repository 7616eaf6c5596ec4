// chd_seed.go -- CHD per-bucket seed table, compressed to the smallest
// fixed-width integer that fits the largest seed actually used.
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2

package mph

import "io"

// seeder abstracts the per-bucket seed table at one of three widths, so
// that a key set needing only small seeds doesn't pay for 4-byte ones.
type seeder interface {
	seed(idx uint64) uint32
	marshal(w io.Writer) (int, error)
	length() int
	width() byte
}

var (
	_ seeder = &u8Seeder{}
	_ seeder = &u16Seeder{}
	_ seeder = &u32Seeder{}
)

type u8Seeder struct{ seeds []uint8 }

func newU8Seeder(v []uint32) seeder {
	bs := make([]byte, len(v))
	for i, a := range v {
		bs[i] = byte(a)
	}
	return &u8Seeder{seeds: bs}
}

func (u *u8Seeder) seed(v uint64) uint32      { return uint32(u.seeds[v]) }
func (u *u8Seeder) length() int                { return len(u.seeds) }
func (u *u8Seeder) width() byte                { return 1 }
func (u *u8Seeder) marshal(w io.Writer) (int, error) { return writeAll(w, u.seeds) }

type u16Seeder struct{ seeds []uint16 }

func newU16Seeder(v []uint32) seeder {
	us := make([]uint16, len(v))
	for i, a := range v {
		us[i] = uint16(a)
	}
	return &u16Seeder{seeds: us}
}

func (u *u16Seeder) seed(v uint64) uint32 { return uint32(u.seeds[v]) }
func (u *u16Seeder) length() int          { return len(u.seeds) }
func (u *u16Seeder) width() byte          { return 2 }
func (u *u16Seeder) marshal(w io.Writer) (int, error) {
	return writeAll(w, u16sToBytes(u.seeds))
}

type u32Seeder struct{ seeds []uint32 }

func newU32Seeder(v []uint32) seeder { return &u32Seeder{seeds: v} }

func (u *u32Seeder) seed(v uint64) uint32 { return u.seeds[v] }
func (u *u32Seeder) length() int          { return len(u.seeds) }
func (u *u32Seeder) width() byte          { return 4 }
func (u *u32Seeder) marshal(w io.Writer) (int, error) {
	return writeAll(w, u32sToBytes(u.seeds))
}
