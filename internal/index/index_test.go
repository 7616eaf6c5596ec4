package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/StefanKarpinski/bam/internal/mph"
	"github.com/StefanKarpinski/bam/internal/record"
)

func buildAndCheck(t *testing.T, data []byte, algo mph.Algorithm, load float64) *Index {
	t.Helper()

	ix, err := Build(data, algo, load)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	offs := record.Offsets(data)
	if ix.N() != len(offs) {
		t.Fatalf("N()=%d, want %d", ix.N(), len(offs))
	}

	for _, off := range offs {
		k, _ := record.Key(data, off)
		h := ix.Salt.HashKey(k)
		slot, ok := ix.Table.Find(h)
		if !ok {
			t.Fatalf("key %q: not found in table", k)
		}
		if int(ix.Offsets[slot]) != off {
			t.Fatalf("key %q: offset table has %d, want %d", k, ix.Offsets[slot], off)
		}
	}
	return ix
}

func TestBuildS1(t *testing.T) {
	data := []byte("alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	buildAndCheck(t, data, mph.CHD, 0.9)
	buildAndCheck(t, data, mph.BBHash, 2.0)
}

func TestBuildRejectsEmpty(t *testing.T) {
	_, err := Build([]byte("no newline here"), mph.CHD, 0.9)
	if err == nil {
		t.Fatalf("expected BuildError for a file with zero valid records")
	}
}

func TestSaveLoadRoundTripCHD(t *testing.T) {
	data := []byte("alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	ix := buildAndCheck(t, data, mph.CHD, 0.9)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.idx")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw[:16]) != "bam index: v000\x00" {
		t.Fatalf("unexpected magic: %q", raw[:16])
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.N() != ix.N() {
		t.Fatalf("N mismatch after load: %d vs %d", loaded.N(), ix.N())
	}

	for _, off := range record.Offsets(data) {
		k, _ := record.Key(data, off)
		h := loaded.Salt.HashKey(k)
		slot, ok := loaded.Table.Find(h)
		if !ok {
			t.Fatalf("key %q: not found after load", k)
		}
		if int(loaded.Offsets[slot]) != off {
			t.Fatalf("key %q: loaded offset %d, want %d", k, loaded.Offsets[slot], off)
		}
	}
}

func TestSaveLoadRoundTripBBHash(t *testing.T) {
	data := []byte("alpha\tone\nbeta\ttwo\ngamma\tthree\ndelta\tfour\n")
	ix := buildAndCheck(t, data, mph.BBHash, 2.0)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.idx")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw[:16]) != "bam index: v001\x00" {
		t.Fatalf("unexpected magic: %q", raw[:16])
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.N() != ix.N() {
		t.Fatalf("N mismatch after load: %d vs %d", loaded.N(), ix.N())
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	data := []byte("alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	ix := buildAndCheck(t, data, mph.CHD, 0.9)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.idx")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-1], 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected IndexError loading a truncated index")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.idx")
	buf := make([]byte, headerLen+8)
	copy(buf, "not a bam index\x00")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected IndexError for bad magic")
	}
}
