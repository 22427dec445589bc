package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// FileName is the journal database inside the working directory. It never
// matches the snapshot extension, so the locator ignores it.
const FileName = ".accesskeeper"

// Bucket names
var (
	configBucket    = []byte("config")
	snapshotsBucket = []byte("snapshots")
)

// Config keys
var (
	configVersion = []byte("version")
	configCreated = []byte("created")
	configVaultID = []byte("vault_id")
)

// Entry records one committed snapshot.
type Entry struct {
	ID      string    `json:"id"`
	File    string    `json:"file"`
	Created time.Time `json:"created"`
	Records int       `json:"records"`
}

// Journal is a bbolt-backed log of committed snapshots. It holds nothing
// secret: file names, timestamps and record counts only, so it can be read
// without a passphrase.
type Journal struct {
	db *bolt.DB
}

// Open opens or creates the journal in dir.
func Open(dir string) (*Journal, error) {
	path := filepath.Join(dir, FileName)
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{configBucket, snapshotsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		config := tx.Bucket(configBucket)
		if config.Get(configVersion) == nil {
			if err := config.Put(configVersion, []byte("1")); err != nil {
				return err
			}
			created, _ := time.Now().MarshalBinary()
			if err := config.Put(configCreated, created); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordSnapshot appends an entry for a freshly committed snapshot file.
func (j *Journal) RecordSnapshot(file string, records int) error {
	entry := Entry{
		ID:      uuid.NewString(),
		File:    file,
		Created: time.Now(),
		Records: records,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(snapshotsBucket)
		seq, err := snapshots.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return snapshots.Put(key, data)
	})
}

// List returns all journal entries, newest first.
func (j *Journal) List() ([]Entry, error) {
	var entries []Entry
	err := j.db.View(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(snapshotsBucket)
		if snapshots == nil {
			return fmt.Errorf("snapshots bucket not found")
		}
		return snapshots.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	// Sequence keys ascend, so reverse for newest first
	for i, jj := 0, len(entries)-1; i < jj; i, jj = i+1, jj-1 {
		entries[i], entries[jj] = entries[jj], entries[i]
	}
	return entries, nil
}

// VaultID returns the stable identifier of this working directory.
func (j *Journal) VaultID() (string, error) {
	var id string
	err := j.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(configBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(configVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		id = string(data)
		return nil
	})
	return id, err
}

// GetOrCreateVaultID returns the existing vault ID or generates a new one.
// The keyring keys stored passphrases by this ID.
func (j *Journal) GetOrCreateVaultID() (string, error) {
	if id, err := j.VaultID(); err == nil {
		return id, nil
	}
	id := uuid.NewString()
	err := j.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(configBucket)
		return config.Put(configVaultID, []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
