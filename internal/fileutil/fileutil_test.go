package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")
	if err := WriteFileAtomic(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a = 2\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	for _, line := range []string{"a.csv", "b.csv"} {
		if err := AppendLine(path, line); err != nil {
			t.Fatal(err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a.csv\nb.csv\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestSizeAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	if _, exists, err := Size(path); err != nil || exists {
		t.Fatalf("expected absent file, exists=%v err=%v", exists, err)
	}
	if err := os.WriteFile(path, []byte("header\nrow1\nrow2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	size, exists, err := Size(path)
	if err != nil || !exists || size != 17 {
		t.Fatalf("unexpected size=%d exists=%v err=%v", size, exists, err)
	}
	if err := TruncateTo(path, 7); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "header\n" {
		t.Fatalf("content mismatch after truncate: got %q", got)
	}
	if err := TruncateTo(path, 100); err != nil {
		t.Fatal(err)
	}
	if err := TruncateTo(filepath.Join(t.TempDir(), "absent"), 0); err != nil {
		t.Fatalf("expected truncate of absent file to be a no-op, got %v", err)
	}
}

func TestSizeRejectsDirectory(t *testing.T) {
	if _, _, err := Size(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	removed, err := RemoveIfExists(present, filepath.Join(dir, "absent"), "")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal to be reported")
	}
	removed, err = RemoveIfExists(present)
	if err != nil || removed {
		t.Fatalf("expected nothing removed, removed=%v err=%v", removed, err)
	}
}
