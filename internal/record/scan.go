// scan.go - the Key Iterator: a restartable, single linear scan over
// the mapped span that discovers every syntactically valid record's
// start offset. Grounded on original_source/bam.c's build-index loop
// (memchr for '\n', then memchr for '\t' strictly before it).
//
// (c) 2026

package record

import "bytes"

// Scan walks span once and calls visit with the start offset of every
// syntactically valid record (a line containing a TAB before its LF).
// Lines with no TAB before the LF are silently skipped, matching
// spec. A trailing partial line (no LF) ends the scan without error.
func Scan(span []byte, visit func(offset int)) {
	p := 0
	end := len(span)

	for p < end {
		rest := span[p:end]
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			break
		}

		line := rest[:nl]
		if bytes.IndexByte(line, '\t') >= 0 {
			visit(p)
		}

		p += nl + 1
	}
}

// Count returns the number of syntactically valid records in span,
// without allocating a slice of offsets.
func Count(span []byte) int {
	n := 0
	Scan(span, func(int) { n++ })
	return n
}

// Offsets collects every record start offset found by Scan, in
// ascending order -- the build-time order the Key Iterator feeds the
// MPH builder and the Offset Table construction.
func Offsets(span []byte) []int {
	offs := make([]int, 0, 1024)
	Scan(span, func(o int) { offs = append(offs, o) })
	return offs
}
