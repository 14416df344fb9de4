package catz

import (
	"bufio"
	"fmt"
	"github.com/gofrs/flock"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"lines.ndjson", "lines.ndjson.gz", "nested/dir/lines.ndjson.gz"} {
		t.Run(name, func(t *testing.T) {
			target := filepath.Join(dir, name)
			w, err := Create(target)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 100; i++ {
				if _, err := fmt.Fprintf(w, "line %d\n", i); err != nil {
					t.Fatal(err)
				}
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			// Double close is harmless for gz writers.
			if gzw, ok := w.(*GZFileWriter); ok {
				if err := gzw.Close(); err != nil {
					t.Errorf("second close: %v", err)
				}
			}

			r, err := Open(target)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			if _, gz := r.(*GZFileReader); gz != IsGZ(name) {
				t.Errorf("expected gz reader=%v, got %T", IsGZ(name), r)
			}
			count := 0
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				if want := fmt.Sprintf("line %d", count); scanner.Text() != want {
					t.Errorf("want %q, got %q", want, scanner.Text())
				}
				count++
			}
			if err := scanner.Err(); err != nil {
				t.Fatal(err)
			}
			if count != 100 {
				t.Errorf("expected 100 lines, got %d", count)
			}
		})
	}
}

func TestOpenNotGZ(t *testing.T) {
	target := filepath.Join(t.TempDir(), "plain.gz")
	if err := os.WriteFile(target, []byte("not gzipped"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(target); err == nil {
		t.Fatal("expected gzip header error")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.geojson")); err == nil {
		t.Fatal("expected not exist error")
	}
	var _ io.ReadCloser = (*GZFileReader)(nil)
}

func TestGZFileWriterLocks(t *testing.T) {
	target := filepath.Join(t.TempDir(), "locked.ndjson.gz")
	w, err := NewGZFileWriter(target, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("{}\n")); err != nil {
		t.Fatal(err)
	}
	other := flock.New(target)
	if ok, err := other.TryLock(); err != nil || ok {
		t.Fatalf("expected file locked while writing, got ok=%v err=%v", ok, err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("expected lock released on close, got ok=%v err=%v", ok, err)
	}
	_ = other.Unlock()
}
