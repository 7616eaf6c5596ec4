// errors.go - errors raised while building or loading an MPH table
//
// (c) Sudhi Herle 2018, adapted 2026
//
// License GPLv2

package mph

import (
	"errors"
	"fmt"
)

var (
	// ErrMPHFail is returned when construction gives up: no seed below
	// maxSeed places some CHD bucket, or BBHash needs more than maxLevel
	// levels.
	ErrMPHFail = errors.New("mph: failed to build table after max retries")

	// ErrTooSmall is returned when unmarshaling from a buffer too
	// short to hold even the fixed header.
	ErrTooSmall = errors.New("mph: not enough data to unmarshal")
)

func errShortWrite(who string, n int) error {
	return fmt.Errorf("mph: %s: incomplete write; wrote %d bytes", who, n)
}

func errUnknownAlgorithm(name string) error {
	return fmt.Errorf("mph: unknown algorithm %q", name)
}
