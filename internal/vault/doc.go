// Package vault implements the credential-store session.
//
// A session binds one working directory to one in-memory credential store:
//   - Open resolves the input path (directory, encrypted snapshot, or
//     plaintext seed file) and loads records through the cipher backend
//   - Add/Search/Remove mutate and query the store in memory
//   - Close commits a new dated snapshot if and only if content changed
//
// Snapshots are append-only: a commit always writes a new
// access_<ddmmyyyy>[_n] file and never edits an existing one. Versioning
// and retention of old snapshots is an external concern.
//
// No cross-process locking is provided. Two processes pointed at the same
// directory may both read the same "latest" snapshot and independently
// write a new one; the file written last wins at the directory level.
package vault
