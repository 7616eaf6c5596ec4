package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/StefanKarpinski/bam/internal/mph"
)

func writeDataFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "data.tsv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestRunBuildsAndSavesIndex(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	log := zap.NewNop().Sugar()

	opts := &Options{DataPath: dataPath, Algorithm: mph.CHD, Load: 0.9}
	ctx, err := Run(opts, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer ctx.Close()

	if !ctx.IndexEnabled {
		t.Fatalf("expected index persistence enabled by default")
	}
	if _, err := os.Stat(ctx.IndexPath); err != nil {
		t.Fatalf("expected index file to be saved: %v", err)
	}

	v, ok := ctx.Lookup.Find([]byte("beta"))
	if !ok || string(v) != "two\n" {
		t.Fatalf("Find(beta): got %q, ok=%v", v, ok)
	}
}

func TestRunLoadsExistingIndex(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	log := zap.NewNop().Sugar()

	opts := &Options{DataPath: dataPath, Algorithm: mph.CHD, Load: 0.9}
	ctx1, err := Run(opts, log)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	indexPath := ctx1.IndexPath
	ctx1.Close()

	ctx2, err := Run(opts, log)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	defer ctx2.Close()

	if ctx2.IndexPath != indexPath {
		t.Fatalf("index path changed across runs: %q vs %q", indexPath, ctx2.IndexPath)
	}
	v, ok := ctx2.Lookup.Find([]byte("gamma"))
	if !ok || string(v) != "three\n" {
		t.Fatalf("Find(gamma): got %q, ok=%v", v, ok)
	}
}

func TestRunNoIndexPersistence(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "alpha\tone\n")
	log := zap.NewNop().Sugar()

	opts := &Options{DataPath: dataPath, IndexPath: "-", Algorithm: mph.CHD, Load: 0.9}
	ctx, err := Run(opts, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer ctx.Close()

	if ctx.IndexEnabled {
		t.Fatalf("expected index persistence disabled")
	}
	if _, err := os.Stat(dataPath + ".idx"); err == nil {
		t.Fatalf("did not expect an index file to be written")
	}
}

func TestRunRejectsMalformedIndex(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "alpha\tone\nbeta\ttwo\n")
	log := zap.NewNop().Sugar()

	opts := &Options{DataPath: dataPath, Algorithm: mph.CHD, Load: 0.9}
	ctx, err := Run(opts, log)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	indexPath := ctx.IndexPath
	ctx.Close()

	raw, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if err := os.WriteFile(indexPath, raw[:len(raw)-1], 0o644); err != nil {
		t.Fatalf("truncate index: %v", err)
	}

	if _, err := Run(opts, log); err == nil {
		t.Fatalf("expected Run to fail loading a truncated index")
	}
}

func TestRunRejectsEmptyDataFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataFile(t, dir, "")
	log := zap.NewNop().Sugar()

	opts := &Options{DataPath: dataPath, Algorithm: mph.CHD, Load: 0.9}
	if _, err := Run(opts, log); err == nil {
		t.Fatalf("expected Run to fail on an empty data file")
	}
}
