package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/accesskeeper/accesskeeper/internal/config"
	"github.com/accesskeeper/accesskeeper/internal/crypto"
	"github.com/accesskeeper/accesskeeper/internal/history"
	"github.com/accesskeeper/accesskeeper/internal/keyring"
	"github.com/accesskeeper/accesskeeper/internal/term"
	"github.com/accesskeeper/accesskeeper/internal/vault"
)

// Options carries the global command-line flags into every command.
type Options struct {
	WorkDir   string // -w: working directory override, persisted to config
	File      string // -f: explicit snapshot or seed file
	Extension string // -e: snapshot extension override
	Debug     bool   // --debug: verbose logging
}

// appEnv is the resolved per-invocation environment.
type appEnv struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	target  string // path handed to vault.Open
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setup loads the config, applies flag overrides and persists a changed
// working directory, the way the original config file keeps work_dir.
func setup(opts Options) *appEnv {
	logger := newLogger(opts.Debug)

	cfgPath, err := config.DefaultPath()
	if err != nil {
		HandleError(err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		HandleError(err)
	}

	if opts.WorkDir != "" {
		abs, err := filepath.Abs(opts.WorkDir)
		if err != nil {
			HandleError(fmt.Errorf("invalid work dir %s: %w", opts.WorkDir, err))
		}
		cfg.WorkDir = abs
		if err := cfg.Save(cfgPath); err != nil {
			logger.Warn("failed to persist config", "error", err)
		}
	}
	if opts.Extension != "" {
		cfg.Extension = opts.Extension
	}

	target := cfg.WorkDir
	if opts.File != "" {
		target = opts.File
	}

	return &appEnv{cfg: cfg, cfgPath: cfgPath, logger: logger, target: target}
}

// workDir is where snapshots and the journal live: the target itself for a
// directory, its parent for a file.
func (a *appEnv) workDir() string {
	if info, err := os.Stat(a.target); err == nil && !info.IsDir() {
		return filepath.Dir(a.target)
	}
	return a.target
}

// openJournal opens the snapshot journal. Journal failures never block the
// actual work, they only cost history entries.
func (a *appEnv) openJournal() *history.Journal {
	journal, err := history.Open(a.workDir())
	if err != nil {
		a.logger.Warn("snapshot journal unavailable", "error", err)
		return nil
	}
	return journal
}

// passphrase resolves the passphrase: environment, then OS keyring when
// enabled, then an interactive prompt. The caller owns clearing the result.
func (a *appEnv) passphrase(journal *history.Journal) []byte {
	if a.cfg.Passphrase != "" {
		return []byte(a.cfg.Passphrase)
	}
	if a.cfg.UseKeyring && journal != nil {
		if id, err := journal.VaultID(); err == nil {
			if p, err := keyring.GetPassphrase(id); err == nil {
				a.logger.Debug("passphrase taken from OS keyring")
				return []byte(p)
			}
		}
	}
	p, err := term.ReadPassphrase("Enter passphrase: ")
	if err != nil {
		HandleError(err)
	}
	return p
}

// openSession opens the credential-store session plus its supporting
// journal and passphrase. Most commands start here.
func openSession(opts Options) (*vault.Session, *history.Journal, []byte, *appEnv) {
	a := setup(opts)
	journal := a.openJournal()
	passphrase := a.passphrase(journal)

	vopts := vault.Options{Extension: a.cfg.Extension, Logger: a.logger}
	if journal != nil {
		vopts.Journal = journal
	}

	sess, err := vault.Open(a.target, passphrase, vopts)
	if err != nil {
		if journal != nil {
			journal.Close()
		}
		crypto.ClearBytes(passphrase)
		HandleError(err)
	}
	return sess, journal, passphrase, a
}

// finish commits the session (no-op when nothing changed) and releases
// the journal and passphrase. Commands defer it right after openSession so
// the commit-or-noop runs on every exit path.
func finish(sess *vault.Session, journal *history.Journal, passphrase []byte) {
	defer crypto.ClearBytes(passphrase)
	if journal != nil {
		defer journal.Close()
	}
	if err := sess.Close(passphrase); err != nil {
		HandleError(err)
	}
}

// HandleError prints common errors consistently and exits
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrBadPath):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Pass a directory, an encrypted snapshot or a plaintext seed file\n")
	case errors.Is(err, vault.ErrDecryptFailed):
		fmt.Fprintf(os.Stderr, "Error: wrong passphrase or corrupt snapshot\n")
	case errors.Is(err, vault.ErrEncryptFailed):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Changes are still pending, retry the command\n")
	case errors.Is(err, vault.ErrNamespaceExhausted):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
