package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize      = 32     // Per-file KDF salt size in bytes
	KeySize       = 32     // AES-256 key size
	NonceSize     = 12     // GCM nonce size
	TagSize       = 16     // GCM authentication tag size
	KDFIterations = 210000 // PBKDF2 iterations (OWASP minimum)

	filePermSecure = 0600
)

var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrAuthFailed        = errors.New("authentication failed")
)

// FileCipher encrypts and decrypts whole files with a passphrase.
// Each file carries its own random salt, so the same passphrase
// produces unrelated keys for different snapshots.
type FileCipher struct{}

// NewFileCipher creates a passphrase-based file cipher.
func NewFileCipher() *FileCipher {
	return &FileCipher{}
}

func deriveKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, KDFIterations, KeySize, sha256.New)
}

// EncryptFile encrypts plaintext with the passphrase and writes the result
// to outPath. On-disk layout: salt || nonce || ciphertext.
func (c *FileCipher) EncryptFile(plaintext, passphrase []byte, outPath string) error {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt)
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, SaltSize+NonceSize+len(plaintext)+TagSize)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)

	if err := os.WriteFile(outPath, out, filePermSecure); err != nil {
		return fmt.Errorf("failed to write encrypted file: %w", err)
	}
	return nil
}

// DecryptFile reads a file produced by EncryptFile and returns the
// plaintext. A wrong passphrase and a corrupt file are indistinguishable
// and both surface as ErrAuthFailed.
func (c *FileCipher) DecryptFile(path string, passphrase []byte) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted file: %w", err)
	}
	if len(data) < SaltSize+NonceSize+TagSize {
		return nil, ErrInvalidCiphertext
	}

	salt := data[:SaltSize]
	nonce := data[SaltSize : SaltSize+NonceSize]
	ciphertext := data[SaltSize+NonceSize:]

	key := deriveKey(passphrase, salt)
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
