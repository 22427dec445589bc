// Package term reads passphrases from the terminal without echo.
package term

import (
	"fmt"
	"syscall"

	"github.com/accesskeeper/accesskeeper/internal/crypto"
	"golang.org/x/term"
)

// ReadPassphrase reads a passphrase from the terminal without echoing
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after passphrase

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures both match
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Enter new passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(first)

	second, err := ReadPassphrase("Confirm new passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if !crypto.ConstantTimeCompare(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	result := make([]byte, len(first))
	copy(result, first)
	return result, nil
}
