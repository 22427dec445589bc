// Package crypto provides the symmetric cipher backend for snapshot files.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from the passphrase via PBKDF2
//   - 32-byte random salt per file (stored in the file header)
//   - 12-byte random nonce per encryption operation
//
// Key derivation uses PBKDF2-HMAC-SHA256 with 210,000 iterations
// (OWASP minimum recommendation).
//
// The vault session treats this package as an opaque service: decrypt a
// file into plaintext bytes, or encrypt plaintext bytes into a new file.
// Authentication failure (wrong passphrase, tampered file) is reported
// uniformly as ErrAuthFailed.
//
// Memory safety: use ClearBytes() to zero sensitive data after use.
package crypto
