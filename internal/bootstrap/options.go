// Package bootstrap implements the decision tree executed once at
// startup: map the data file, resolve the index path, then choose
// between loading an existing index, building and saving a new one,
// or building in memory without persisting, before handing off to the
// HTTP Adapter.
//
// (c) 2026
package bootstrap

import (
	"github.com/StefanKarpinski/bam/internal/mph"
)

// Options holds every configuration parameter threaded through
// bootstrap, following the config-record pattern ignite's pkg/options
// uses to keep these out of process globals.
type Options struct {
	// DataPath is the positional TSV data-file argument.
	DataPath string

	// IndexPath overrides the default "<DataPath>.idx" location. The
	// literal "-" disables index persistence entirely.
	IndexPath string

	// Port is the TCP port the HTTP Adapter listens on.
	Port int

	// Threads bounds concurrently-served connections; 0 means "online
	// CPU count", resolved by the caller before reaching bootstrap.
	Threads int

	// ExitAfterIndex, when true, builds or loads the index and returns
	// without starting the HTTP Adapter.
	ExitAfterIndex bool

	// Algorithm selects the MPH construction used when building a new
	// index. Ignored when an existing index is loaded -- its own magic
	// tag determines which loader runs.
	Algorithm mph.Algorithm

	// Load is the CHD load factor or BBHash gamma, depending on
	// Algorithm.
	Load float64

	// Verbose enables debug-level logging.
	Verbose bool
}

// resolveIndexPath: "-" disables persistence, empty defaults to
// "<data>.idx", anything else is used as given.
func resolveIndexPath(dataPath, indexPath string) (path string, enabled bool) {
	switch indexPath {
	case "-":
		return "", false
	case "":
		return dataPath + ".idx", true
	default:
		return indexPath, true
	}
}
