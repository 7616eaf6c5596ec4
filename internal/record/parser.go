// parser.go - the Record Parser: pure functions recognizing a record's
// key and value spans within the mapped byte span. No allocation.
//
// (c) 2026

package record

import "bytes"

// KeyEnd returns the offset of the first TAB at or after offset. ok is
// false if no TAB exists before the end of span (caller must not use
// the offset in that case).
func KeyEnd(span []byte, offset int) (end int, ok bool) {
	i := bytes.IndexByte(span[offset:], '\t')
	if i < 0 {
		return 0, false
	}
	return offset + i, true
}

// ValueEnd returns the offset one past the first LF after tabOffset
// (the LF is included in the value). ok is false if no LF follows.
func ValueEnd(span []byte, tabOffset int) (end int, ok bool) {
	i := bytes.IndexByte(span[tabOffset:], '\n')
	if i < 0 {
		return 0, false
	}
	return tabOffset + i + 1, true
}

// KeyLen returns the length of the key starting at offset.
func KeyLen(span []byte, offset int) (int, bool) {
	end, ok := KeyEnd(span, offset)
	if !ok {
		return 0, false
	}
	return end - offset, true
}

// ValueLen returns the length of the value (including its trailing
// LF) starting right after the TAB at tabOffset.
func ValueLen(span []byte, tabOffsetPlus1 int) (int, bool) {
	end, ok := ValueEnd(span, tabOffsetPlus1)
	if !ok {
		return 0, false
	}
	return end - tabOffsetPlus1, true
}

// Key returns the key span of the record starting at offset.
func Key(span []byte, offset int) ([]byte, bool) {
	end, ok := KeyEnd(span, offset)
	if !ok {
		return nil, false
	}
	return span[offset:end], true
}

// Value returns the value span (including trailing LF) of the record
// whose key starts at offset and has length keyLen.
func Value(span []byte, offset, keyLen int) ([]byte, bool) {
	vstart := offset + keyLen + 1
	vend, ok := ValueEnd(span, vstart)
	if !ok {
		return nil, false
	}
	return span[vstart:vend], true
}
