package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLocatorMatches(t *testing.T) {
	l := NewLocator("", discardLogger())
	if l.Extension() != DefaultExtension {
		t.Errorf("Extension: got %q, want %q", l.Extension(), DefaultExtension)
	}

	cases := []struct {
		name string
		want bool
	}{
		{"access_01012026.gpg", true},
		{"anything.gpg", true},
		{"access_01012026.txt", false},
		{"access_01012026gpg", false},
		{".accesskeeper", false},
	}
	for _, tc := range cases {
		if got := l.Matches(tc.name); got != tc.want {
			t.Errorf("Matches(%q): got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLocatorLatestEmptyDir(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())

	latest, err := l.Latest(dir)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Empty dir should yield no snapshot, got %q", latest)
	}
}

func TestLocatorLatestByModTime(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())

	older := filepath.Join(dir, "access_01012026.gpg")
	newer := filepath.Join(dir, "access_02012026.gpg")
	writeFile(t, older)
	writeFile(t, newer)

	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, base, base); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if err := os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	latest, err := l.Latest(dir)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != newer {
		t.Errorf("Latest: got %q, want %q", latest, newer)
	}
}

func TestLocatorEqualModTimeTieBreak(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())

	first := filepath.Join(dir, "access_01012026.gpg")
	second := filepath.Join(dir, "access_01012026_2.gpg")
	writeFile(t, first)
	writeFile(t, second)

	same := time.Now().Add(-time.Hour)
	for _, p := range []string{first, second} {
		if err := os.Chtimes(p, same, same); err != nil {
			t.Fatalf("Chtimes failed: %v", err)
		}
	}

	// Name descending breaks the tie, so the counter suffix wins
	latest, err := l.Latest(dir)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != second {
		t.Errorf("Latest: got %q, want %q", latest, second)
	}
}

func TestLocatorIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())

	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, ".accesskeeper"))
	if err := os.Mkdir(filepath.Join(dir, "sub.gpg"), 0700); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	paths, err := l.Snapshots(dir)
	if err != nil {
		t.Fatalf("Snapshots failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no snapshots, got %v", paths)
	}
}

func TestLocatorNext(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())
	l.now = func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) }

	// First of the day carries no counter
	next, err := l.Next(dir)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := filepath.Join(dir, "access_15012026.gpg")
	if next != want {
		t.Errorf("Next: got %q, want %q", next, want)
	}

	// Existing names push the counter forward
	writeFile(t, want)
	next, err = l.Next(dir)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want = filepath.Join(dir, "access_15012026_2.gpg")
	if next != want {
		t.Errorf("Next: got %q, want %q", next, want)
	}

	writeFile(t, want)
	next, err = l.Next(dir)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want = filepath.Join(dir, "access_15012026_3.gpg")
	if next != want {
		t.Errorf("Next: got %q, want %q", next, want)
	}
}

func TestLocatorNextNamespaceExhausted(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("gpg", discardLogger())
	l.now = func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) }

	writeFile(t, filepath.Join(dir, "access_15012026.gpg"))
	for i := 2; i <= 999; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("access_15012026_%d.gpg", i)))
	}

	_, err := l.Next(dir)
	if !errors.Is(err, ErrNamespaceExhausted) {
		t.Errorf("Expected ErrNamespaceExhausted, got %v", err)
	}
}
