package vault

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/accesskeeper/accesskeeper/internal/crypto"
)

var (
	// ErrBadPath means the input path is neither a readable file nor a
	// directory. Fatal at open time.
	ErrBadPath = errors.New("wrong path passed")

	// ErrDecryptFailed means the cipher backend rejected a snapshot (wrong
	// passphrase or corrupt file). The session never starts empty on it.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrEncryptFailed means the cipher backend failed during commit. The
	// store stays dirty so the commit can be retried.
	ErrEncryptFailed = errors.New("encryption failed")
)

// Cipher is the symmetric backend the session delegates all cryptography
// to. crypto.FileCipher is the production implementation.
type Cipher interface {
	DecryptFile(path string, passphrase []byte) ([]byte, error)
	EncryptFile(plaintext, passphrase []byte, outPath string) error
}

// Recorder receives a note about every committed snapshot. Implemented by
// the history journal; optional.
type Recorder interface {
	RecordSnapshot(file string, records int) error
}

// Options configures a session. The zero value selects the default
// extension, the AES file cipher, a discarding logger and no journal.
type Options struct {
	Extension string
	Cipher    Cipher
	Journal   Recorder
	Logger    *slog.Logger
}

// Session is one open→mutate→commit unit of work bound to a working
// directory and an in-memory store. Obtain it with Open, defer Close:
// Close commits a new snapshot if and only if content changed, exactly
// once, on every exit path.
//
// A Session is not reentrant and must not be shared between goroutines.
type Session struct {
	dir          string
	snapshotPath string // current snapshot pointer, empty when none loaded
	baseline     []byte // serialized content right after open, for diffs
	store        *Store
	locator      *Locator
	cipher       Cipher
	journal      Recorder
	logger       *slog.Logger
	closed       bool
}

// Open resolves path into a working directory and loads the store.
// Recognized path shapes:
//   - directory: decrypt the newest snapshot inside it, if any
//   - file with the snapshot extension: decrypt exactly that file
//   - any other file: parse it as plaintext seed content, then also merge
//     the newest snapshot in the same directory, if any
//
// Anything else fails with ErrBadPath. A backend failure while decrypting
// fails with ErrDecryptFailed; the session does not silently start empty.
func Open(path string, passphrase []byte, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cipher := opts.Cipher
	if cipher == nil {
		cipher = crypto.NewFileCipher()
	}

	s := &Session{
		store:   NewStore(logger),
		locator: NewLocator(opts.Extension, logger),
		cipher:  cipher,
		journal: opts.Journal,
		logger:  logger,
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadPath, path)
	}

	switch {
	case info.IsDir():
		s.dir = path
		if err := s.loadLatest(passphrase); err != nil {
			return nil, err
		}

	case s.locator.Matches(info.Name()):
		s.dir = filepath.Dir(path)
		if err := s.decryptInto(path, passphrase); err != nil {
			return nil, err
		}

	default:
		s.dir = filepath.Dir(path)
		if err := s.loadLatest(passphrase); err != nil {
			return nil, err
		}
		// Baseline before the seed merge, so imports show up in diffs
		s.baseline = s.store.Serialize()
		if err := s.importSeed(path); err != nil {
			return nil, err
		}
	}

	if s.baseline == nil {
		s.baseline = s.store.Serialize()
	}
	return s, nil
}

func (s *Session) loadLatest(passphrase []byte) error {
	latest, err := s.locator.Latest(s.dir)
	if err != nil {
		return err
	}
	if latest == "" {
		return nil
	}
	return s.decryptInto(latest, passphrase)
}

func (s *Session) decryptInto(path string, passphrase []byte) error {
	s.logger.Debug("decrypting", "file", path)
	data, err := s.cipher.DecryptFile(path, passphrase)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrDecryptFailed, path, err)
	}
	s.store.LoadSnapshot(string(data))
	crypto.ClearBytes(data)
	s.snapshotPath = path
	s.logger.Debug("got credentials of the encrypted file", "file", path, "total", s.store.Len())
	return nil
}

func (s *Session) importSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrBadPath, path, err)
	}
	s.store.Import(string(data))
	crypto.ClearBytes(data)
	s.logger.Debug("got credentials of the text file", "file", path, "total", s.store.Len())
	return nil
}

// Dir returns the session's working directory.
func (s *Session) Dir() string {
	return s.dir
}

// Snapshot returns the current snapshot path, empty when none was loaded
// or written yet.
func (s *Session) Snapshot() string {
	return s.snapshotPath
}

// Len returns the number of records in memory.
func (s *Session) Len() int {
	return s.store.Len()
}

// Dirty reports whether Close will write a new snapshot.
func (s *Session) Dirty() bool {
	return s.store.Dirty()
}

// Records returns all records in store order.
func (s *Session) Records() []Credential {
	return s.store.All()
}

// Add parses raw text into records and inserts the new ones.
func (s *Session) Add(raw string) int {
	return s.store.Add(raw)
}

// Search returns the records matching the case-insensitive pattern.
func (s *Session) Search(pattern string) ([]Credential, error) {
	return s.store.Search(pattern)
}

// Remove deletes the records matching the pattern and returns the count.
func (s *Session) Remove(pattern string) (int, error) {
	return s.store.Remove(pattern)
}

// Touch forces a snapshot on Close even without content changes. Used for
// passphrase rotation.
func (s *Session) Touch() {
	s.store.markDirty()
}

// Close commits the session: when the store is clean it is a logged no-op,
// otherwise the serialized content is encrypted into the next free dated
// snapshot and the current-snapshot pointer moves to the new file. The
// previous snapshot is never touched.
//
// Close is idempotent after success; after a failed commit the store stays
// dirty and Close may be called again to retry.
func (s *Session) Close(passphrase []byte) error {
	if s.closed {
		return nil
	}
	if !s.store.Dirty() {
		s.closed = true
		s.logger.Debug("content has not been changed, skip new file creation")
		return nil
	}

	s.logger.Debug("content has been changed, creating new encrypted file")
	plaintext := s.store.Serialize()
	defer crypto.ClearBytes(plaintext)

	out, err := s.locator.Next(s.dir)
	if err != nil {
		return err
	}
	if err := s.cipher.EncryptFile(plaintext, passphrase, out); err != nil {
		return fmt.Errorf("%w: %s", ErrEncryptFailed, err)
	}

	s.closed = true
	s.store.clearDirty()
	s.snapshotPath = out
	s.logger.Info("encrypted file successfully created", "file", out)

	if s.journal != nil {
		if err := s.journal.RecordSnapshot(filepath.Base(out), s.store.Len()); err != nil {
			s.logger.Warn("failed to journal snapshot", "error", err)
		}
	}
	return nil
}
