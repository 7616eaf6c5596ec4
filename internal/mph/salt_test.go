// salt_test.go -- test suite for the siphash key-hashing salt
//
// (c) 2026

package mph

import "testing"

func TestSaltHashIsDeterministic(t *testing.T) {
	assert := newAsserter(t)

	s := NewSalt()
	for _, w := range keyw {
		a := s.HashKey([]byte(w))
		b := s.HashKey([]byte(w))
		assert(a == b, "hash of %q not deterministic: %#x vs %#x", w, a, b)
	}
}

func TestSaltDiffersPerInstance(t *testing.T) {
	assert := newAsserter(t)

	s1 := NewSalt()
	s2 := NewSalt()
	assert(s1.K0 != s2.K0 || s1.K1 != s2.K1, "two freshly generated salts collided")
}

func TestSaltMarshalRoundtrip(t *testing.T) {
	assert := newAsserter(t)

	s := NewSalt()
	buf := s.MarshalBinary()
	assert(len(buf) == 16, "marshaled salt should be 16 bytes, got %d", len(buf))

	s2, err := UnmarshalSalt(buf)
	assert(err == nil, "unmarshal failed: %s", err)
	assert(s.K0 == s2.K0 && s.K1 == s2.K1, "salt changed across marshal roundtrip")

	for _, w := range keyw {
		assert(s.HashKey([]byte(w)) == s2.HashKey([]byte(w)), "hash of %q changed across roundtrip", w)
	}
}

func TestUnmarshalSaltTooShort(t *testing.T) {
	assert := newAsserter(t)

	_, err := UnmarshalSalt([]byte{1, 2, 3})
	assert(err != nil, "expected error unmarshaling a short buffer")
}
