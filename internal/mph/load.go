// load.go - dispatches to the right unmarshaler by algorithm tag.
//
// (c) 2026
package mph

// Load reconstructs a previously-frozen Table from its own marshaled
// bytes, given which algorithm produced it. buf may hold trailing
// bytes past the table's own encoding (e.g. a caller's offset table);
// n reports exactly how many leading bytes of buf the table consumed,
// so the caller can locate whatever follows.
func Load(algo Algorithm, buf []byte) (tbl Table, n int, err error) {
	switch algo {
	case CHD:
		return loadCHD(buf)
	case BBHash:
		return loadBBHash(buf)
	default:
		return nil, 0, errUnknownAlgorithm(algo.String())
	}
}
