package gzio

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_PlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(plain, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	// gzip content without a .gz suffix is still detected by magic number
	packed := filepath.Join(dir, "b.dat")
	fh, err := os.Create(packed)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	_, _ = gw.Write([]byte("hello"))
	_ = gw.Close()
	_ = fh.Close()

	for _, p := range []string{plain, packed} {
		rc, err := Open(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil || string(b) != "hello" {
			t.Fatalf("%s: got %q err=%v", p, b, err)
		}
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "S")
	if err := os.WriteFile(base+".json.gz", []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := FirstExisting(base, ".json", ".json.gz")
	if !ok || got != base+".json.gz" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := FirstExisting(filepath.Join(dir, "C"), ".json"); ok {
		t.Fatal("unexpected match")
	}
}
