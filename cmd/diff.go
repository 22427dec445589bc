package cmd

import (
	"fmt"

	"github.com/accesskeeper/accesskeeper/internal/crypto"
)

// Diff shows what the next commit would change, without committing.
// Mainly useful with a seed file (-f) before importing it for real.
func Diff(opts Options) {
	sess, journal, passphrase, _ := openSession(opts)
	// Preview only: the session is deliberately not closed, so no snapshot
	// is written even when a seed file made the store dirty.
	defer crypto.ClearBytes(passphrase)
	if journal != nil {
		defer journal.Close()
	}

	diff := sess.PendingDiff()
	if diff == "" {
		fmt.Println("No changes detected")
		return
	}
	fmt.Print(diff)
}
