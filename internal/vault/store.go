package vault

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Store is the in-memory credential collection for one session. Records are
// kept in encounter order; an index keyed by the serialized line gives O(1)
// duplicate checks. Identity is the full field tuple without the ID, so
// re-adding an exact duplicate is a no-op while the same resource/login
// with a different password is a distinct entry.
//
// A Store is not safe for concurrent use; a session is a single logical flow.
type Store struct {
	logger *slog.Logger
	items  []Credential
	index  map[string]int // serialized line -> position in items
	dirty  bool
	nextID int
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger: logger,
		index:  make(map[string]int),
		nextID: 1,
	}
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.items)
}

// Dirty reports whether membership changed since the last load or commit.
func (s *Store) Dirty() bool {
	return s.dirty
}

// All returns the records in store order.
func (s *Store) All() []Credential {
	out := make([]Credential, len(s.items))
	copy(out, s.items)
	return out
}

// merge parses text and inserts records not already present. IDs continue
// from the current maximum. Returns the number of records inserted.
func (s *Store) merge(text string, markDirty bool) int {
	records := ParseLines(s.logger, text, s.nextID)
	added := 0
	for _, c := range records {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
		line := c.Line()
		if _, ok := s.index[line]; ok {
			continue
		}
		s.index[line] = len(s.items)
		s.items = append(s.items, c)
		added++
	}
	if added > 0 && markDirty {
		s.dirty = true
	}
	s.logger.Debug("credentials merged into memory", "added", added, "total", len(s.items))
	return added
}

// Add parses raw text into records and inserts the ones not already
// present. The store becomes dirty if at least one record was inserted.
func (s *Store) Add(raw string) int {
	return s.merge(raw, true)
}

// LoadSnapshot merges decrypted snapshot content without touching the
// dirty flag: loading existing state is not a change.
func (s *Store) LoadSnapshot(text string) int {
	return s.merge(text, false)
}

// Import merges plaintext seed content. Unlike LoadSnapshot it marks the
// store dirty, so imported records are committed into the next snapshot.
func (s *Store) Import(text string) int {
	return s.merge(text, true)
}

func (s *Store) compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Search returns the records whose Display() string matches the
// case-insensitive regular expression, in store order. An empty store or
// no matches yields an empty result, never an error.
func (s *Store) Search(pattern string) ([]Credential, error) {
	re, err := s.compile(pattern)
	if err != nil {
		return nil, err
	}
	if len(s.items) == 0 {
		s.logger.Warn("no content to search in")
		return nil, nil
	}
	var found []Credential
	for _, c := range s.items {
		if re.MatchString(c.Display()) {
			found = append(found, c)
		}
	}
	s.logger.Info("search finished", "pattern", pattern, "found", len(found))
	return found, nil
}

// Remove deletes exactly the records an equivalent Search call would
// return and reports how many were deleted. The store becomes dirty only
// when the count is positive.
func (s *Store) Remove(pattern string) (int, error) {
	found, err := s.Search(pattern)
	if err != nil {
		return 0, err
	}
	if len(found) == 0 {
		return 0, nil
	}

	doomed := make(map[string]struct{}, len(found))
	for _, c := range found {
		doomed[c.Line()] = struct{}{}
	}

	kept := s.items[:0]
	s.index = make(map[string]int)
	for _, c := range s.items {
		if _, ok := doomed[c.Line()]; ok {
			continue
		}
		s.index[c.Line()] = len(kept)
		kept = append(kept, c)
	}
	s.items = kept
	s.dirty = true
	s.logger.Info("credentials removed", "count", len(found))
	return len(found), nil
}

// Serialize joins the serialized lines of all records with the snapshot
// separator. Called at commit time.
func (s *Store) Serialize() []byte {
	lines := make([]string, 0, len(s.items))
	for _, c := range s.items {
		lines = append(lines, c.Line())
	}
	return []byte(strings.Join(lines, lineSeparator))
}

// clearDirty resets the dirty flag after a successful commit.
func (s *Store) clearDirty() {
	s.dirty = false
}

// markDirty forces a commit on close even without membership changes.
// Used for passphrase rotation.
func (s *Store) markDirty() {
	s.dirty = true
}
