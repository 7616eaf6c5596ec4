// bootstrap.go - the decision tree described in options.go's package
// doc: map data, resolve index path, load-or-build-or-no-index, then
// either stop (index-and-exit) or hand off to serving.
//
// (c) 2026

package bootstrap

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/StefanKarpinski/bam/internal/errs"
	"github.com/StefanKarpinski/bam/internal/index"
	"github.com/StefanKarpinski/bam/internal/lookup"
	"github.com/StefanKarpinski/bam/internal/record"
)

// Context is the immutable server context assembled by Run: the
// mapped data span, the loaded-or-built index, and the Lookup Service
// over both. Every HTTP worker shares this by reference; nothing in
// it mutates after Run returns it.
type Context struct {
	Mapping *record.Mapping
	Index   *index.Index
	Lookup  *lookup.Service

	IndexPath    string
	IndexEnabled bool
}

// Close releases the data mapping. The index holds no OS resources of
// its own (it was either read once into memory, or built in memory).
func (c *Context) Close() error {
	return c.Mapping.Close()
}

// Run executes the bootstrap decision tree and returns the assembled
// server Context, or an error if any startup step failed.
func Run(opts *Options, log *zap.SugaredLogger) (*Context, error) {
	mapping, err := record.Open(opts.DataPath)
	if err != nil {
		return nil, err
	}

	indexPath, enabled := resolveIndexPath(opts.DataPath, opts.IndexPath)

	var ix *index.Index
	if enabled {
		ix, err = loadOrBuild(mapping, indexPath, opts, log)
	} else {
		log.Infow("index persistence disabled, building in memory", "data", opts.DataPath)
		ix, err = index.Build(mapping.Bytes(), opts.Algorithm, opts.Load)
	}
	if err != nil {
		mapping.Close()
		return nil, err
	}

	svc := lookup.New(mapping.Bytes(), ix)

	return &Context{
		Mapping:      mapping,
		Index:        ix,
		Lookup:       svc,
		IndexPath:    indexPath,
		IndexEnabled: enabled,
	}, nil
}

// loadOrBuild implements steps 3-4 of the decision tree: attempt a
// load first; a malformed-but-present index is a hard IndexError (no
// silent rebuild), while an absent file falls through to build+save.
func loadOrBuild(mapping *record.Mapping, indexPath string, opts *Options, log *zap.SugaredLogger) (*index.Index, error) {
	ix, err := index.Load(indexPath)
	switch {
	case err == nil:
		log.Infow("loaded index", "path", indexPath, "keys", ix.N())
		return ix, nil

	case os.IsNotExist(err):
		log.Infow("no index found, building", "path", indexPath)
		built, buildErr := index.Build(mapping.Bytes(), opts.Algorithm, opts.Load)
		if buildErr != nil {
			return nil, buildErr
		}
		if saveErr := built.Save(indexPath); saveErr != nil {
			return nil, saveErr
		}
		log.Infow("saved index", "path", indexPath, "keys", built.N())
		return built, nil

	default:
		return nil, errs.New(errs.IndexError, err, fmt.Sprintf("load index %q", indexPath))
	}
}
