package cmd

import (
	"fmt"
	"os"

	"github.com/accesskeeper/accesskeeper/internal/crypto"
	"github.com/accesskeeper/accesskeeper/internal/keyring"
	"github.com/accesskeeper/accesskeeper/internal/term"
)

// Rotate re-encrypts the current content into a new snapshot under a new
// passphrase. Records are untouched; only the passphrase changes.
func Rotate(opts Options) {
	sess, journal, passphrase, a := openSession(opts)
	defer crypto.ClearBytes(passphrase)
	if journal != nil {
		defer journal.Close()
	}

	if sess.Snapshot() == "" && sess.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: nothing to rotate, no snapshot found\n")
		os.Exit(1)
	}

	newPassphrase, err := term.ReadPassphraseConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(newPassphrase)

	sess.Touch()
	if err := sess.Close(newPassphrase); err != nil {
		HandleError(err)
	}
	fmt.Printf("Re-encrypted %d credentials into %s\n", sess.Len(), sess.Snapshot())

	// Keep a cached keyring passphrase in step with the rotation
	if a.cfg.UseKeyring && journal != nil {
		if id, err := journal.VaultID(); err == nil && keyring.HasPassphrase(id) {
			if err := keyring.SavePassphrase(id, string(newPassphrase)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to update keyring: %s\n", err)
			} else {
				fmt.Println("Keyring passphrase updated")
			}
		}
	}
}
