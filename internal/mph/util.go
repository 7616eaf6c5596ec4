// util.go -- byte/word conversions and small io helpers shared by the
// CHD and BBHash marshalers.
//
// go-mph's own endian_le.go/endian_be.go reinterpret mmap'd memory in
// place via unsafe casts, which is only safe because go-mph's DBReader
// mmaps the offset table directly. internal/index (our caller) reads
// the index file into an ordinary buffer before handing it here, so
// we use plain encoding/binary instead -- one fewer unsafe cast, and it
// fixes the table's on-disk width to little-endian regardless of host
// architecture.
//
// (c) 2026
package mph

import (
	"encoding/binary"
	"fmt"
	"io"
)

func writeAll(w io.Writer, buf []byte) (int, error) {
	n, err := w.Write(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		return n, errShortWrite("write", n)
	}
	return n, nil
}

// errWriter lets a marshaler issue a sequence of writes and check the
// error once at the end, rather than after every call.
type errWriter struct {
	w   io.Writer
	n   int
	err error
}

func newErrWriter(w io.Writer) *errWriter {
	return &errWriter{w: w}
}

func (e *errWriter) write(b []byte) {
	if e.err != nil {
		return
	}
	n, err := writeAll(e.w, b)
	e.n += n
	e.err = err
}

func u64sToBytes(v []uint64) []byte {
	bs := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(bs[i*8:], x)
	}
	return bs
}

func bytesToU64s(b []byte) []uint64 {
	n := len(b) / 8
	v := make([]uint64, n)
	for i := 0; i < n; i++ {
		v[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return v
}

func u32sToBytes(v []uint32) []byte {
	bs := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(bs[i*4:], x)
	}
	return bs
}

func bytesToU32s(b []byte) []uint32 {
	n := len(b) / 4
	v := make([]uint32, n)
	for i := 0; i < n; i++ {
		v[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return v
}

func u16sToBytes(v []uint16) []byte {
	bs := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(bs[i*2:], x)
	}
	return bs
}

func bytesToU16s(b []byte) []uint16 {
	n := len(b) / 2
	v := make([]uint16, n)
	for i := 0; i < n; i++ {
		v[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return v
}

func humansize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for x := n / unit; x >= unit; x /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// mix is shared by chd.go and bbhash.go's hashing rounds.
func mix(h uint64) uint64 {
	h ^= h >> 23
	h *= 0x2127599bf4325c37
	h ^= h >> 47
	return h
}
