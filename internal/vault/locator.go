package vault

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// DefaultExtension is the snapshot file extension when none is configured.
	DefaultExtension = "gpg"

	snapshotPrefix     = "access_"
	snapshotDateLayout = "02012006"
	maxNameProbes      = 999
	maxListedInLog     = 5
)

// ErrNamespaceExhausted means every access_<date>[_n] name for today already
// exists. There is no silent overwrite; the operator has to remove old files.
var ErrNamespaceExhausted = errors.New("all possible snapshot file names already exist")

// Locator scans a working directory for encrypted snapshots. It is pure
// directory bookkeeping: which snapshot is newest, and what the next
// snapshot should be called.
type Locator struct {
	ext    string
	logger *slog.Logger
	now    func() time.Time
}

// NewLocator creates a locator for snapshots with the given extension
// (without the leading dot). An empty extension selects DefaultExtension.
func NewLocator(ext string, logger *slog.Logger) *Locator {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Locator{ext: ext, logger: logger, now: time.Now}
}

// Extension returns the snapshot extension without the leading dot.
func (l *Locator) Extension() string {
	return l.ext
}

// Matches reports whether the file name has the snapshot extension.
func (l *Locator) Matches(name string) bool {
	return filepath.Ext(name) == "."+l.ext
}

// Snapshots lists all snapshot files in dir, newest first by modification
// time. Equal timestamps are broken by file name, lexicographically
// descending, so the order is deterministic.
func (l *Locator) Snapshots(dir string) ([]string, error) {
	l.logger.Debug("searching for encrypted files", "dir", dir, "ext", l.ext)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !l.Matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			l.logger.Warn("cannot stat snapshot candidate", "name", entry.Name(), "error", err)
			continue
		}
		found = append(found, candidate{path: filepath.Join(dir, entry.Name()), modTime: info.ModTime()})
	}
	if len(found) == 0 {
		return nil, nil
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].modTime.Equal(found[j].modTime) {
			return found[i].modTime.After(found[j].modTime)
		}
		return found[i].path > found[j].path
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}

	shown := len(paths)
	if shown > maxListedInLog {
		shown = maxListedInLog
	}
	l.logger.Debug("latest encrypted files", "files", paths[:shown])
	return paths, nil
}

// Latest returns the newest snapshot in dir, or an empty string when the
// directory holds no snapshots (logged as a warning, not an error).
func (l *Locator) Latest(dir string) (string, error) {
	paths, err := l.Snapshots(dir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		l.logger.Warn("directory does not contain any encrypted files", "dir", dir)
		return "", nil
	}
	l.logger.Info("newest encrypted file", "file", paths[0])
	return paths[0], nil
}

// Next generates the first free dated snapshot name in dir:
// access_<ddmmyyyy>.<ext>, then access_<ddmmyyyy>_2.<ext> and so on up to
// _999. The result never points at an existing file.
func (l *Locator) Next(dir string) (string, error) {
	date := l.now().Format(snapshotDateLayout)
	for i := 1; i <= maxNameProbes; i++ {
		suffix := ""
		if i > 1 {
			suffix = fmt.Sprintf("_%d", i)
		}
		name := snapshotPrefix + date + suffix + "." + l.ext
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: remove at least one old file in %s", ErrNamespaceExhausted, dir)
}
