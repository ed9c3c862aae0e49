package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func TestIsUpToDate(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	out := filepath.Join(dir, "output.css")
	in := filepath.Join(dir, "input.css")

	if isUpToDate(out, []string{in}) {
		t.Error("missing output should not be up to date")
	}

	touch(t, in, old)
	touch(t, out, now)
	if !isUpToDate(out, []string{in, filepath.Join(dir, "gone.css")}) {
		t.Error("newer output should be up to date")
	}

	touch(t, in, now.Add(time.Minute))
	if isUpToDate(out, []string{in}) {
		t.Error("newer input should force a rebuild")
	}
}

func TestTemplUpToDate(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	touch(t, filepath.Join(dir, "pages", "layout.templ"), old)
	touch(t, filepath.Join(dir, "pages", "layout_templ.go"), now)
	// Vendored reference trees are not generated.
	touch(t, filepath.Join(dir, "_examples", "other.templ"), now)

	if !templUpToDate(dir) {
		t.Error("generated files newer than sources should be up to date")
	}

	touch(t, filepath.Join(dir, "pages", "medicines.templ"), old)
	if templUpToDate(dir) {
		t.Error("templ file without generated output should need generation")
	}
}
