// Package history keeps a bbolt journal of committed snapshots.
//
// The journal lives next to the snapshots as .accesskeeper and stores only
// non-secret metadata (snapshot file name, creation time, record count), so
// the history command works without a passphrase. It also holds the vault
// ID used as the keyring key for cached passphrases.
//
// Journal writes are best effort: a failure is logged by the session and
// never fails a commit.
package history
