package cmd

import (
	"fmt"
	"os"

	"github.com/accesskeeper/accesskeeper/internal/crypto"
	"github.com/accesskeeper/accesskeeper/internal/history"
	"github.com/accesskeeper/accesskeeper/internal/keyring"
	"github.com/accesskeeper/accesskeeper/internal/term"
	"github.com/accesskeeper/accesskeeper/internal/vault"
)

// KeyringSave verifies the passphrase against the latest snapshot and
// stores it in the OS keyring under this vault's ID.
func KeyringSave(opts Options) {
	a := setup(opts)

	journal, err := history.Open(a.workDir())
	if err != nil {
		HandleError(err)
	}
	defer journal.Close()

	passphrase, err := term.ReadPassphrase("Enter passphrase: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	// Verify by actually decrypting the latest snapshot
	sess, err := vault.Open(a.target, passphrase, vault.Options{Extension: a.cfg.Extension, Logger: a.logger})
	if err != nil {
		HandleError(err)
	}
	if sess.Snapshot() == "" {
		fmt.Fprintf(os.Stderr, "Error: no encrypted file found to verify the passphrase against\n")
		os.Exit(1)
	}

	vaultID, err := journal.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassphrase(vaultID, string(passphrase)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Passphrase saved to keyring")
}

// KeyringForget removes the cached passphrase from the OS keyring.
func KeyringForget(opts Options) {
	a := setup(opts)

	journal, err := history.Open(a.workDir())
	if err != nil {
		HandleError(err)
	}
	defer journal.Close()

	vaultID, err := journal.VaultID()
	if err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}
	if err := keyring.DeletePassphrase(vaultID); err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}
	fmt.Println("Passphrase removed from keyring")
}

// KeyringStatus reports whether a passphrase is cached for this vault.
func KeyringStatus(opts Options) {
	a := setup(opts)

	journal, err := history.Open(a.workDir())
	if err != nil {
		HandleError(err)
	}
	defer journal.Close()

	vaultID, err := journal.VaultID()
	if err != nil {
		fmt.Println("Passphrase: not stored")
		return
	}
	if keyring.HasPassphrase(vaultID) {
		fmt.Println("Passphrase: stored in keyring")
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
