package cmd

import (
	"fmt"
	"time"

	"github.com/accesskeeper/accesskeeper/internal/history"
)

// History lists the snapshot journal. No passphrase required.
func History(opts Options) {
	a := setup(opts)

	journal, err := history.Open(a.workDir())
	if err != nil {
		HandleError(err)
	}
	defer journal.Close()

	entries, err := journal.List()
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Println("No snapshots recorded yet")
		return
	}

	fmt.Println("Committed snapshots, newest first:")
	for _, e := range entries {
		fmt.Printf("  %s  %s (%d records)\n", e.Created.Format(time.RFC3339), e.File, e.Records)
	}
}
