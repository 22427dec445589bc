package cmd

import (
	"fmt"
	"os"
	"strings"
)

// Remove deletes the credentials matching the pattern after showing them
// and asking for confirmation (skipped with force).
func Remove(opts Options, pattern string, force bool) {
	if pattern == "" {
		fmt.Fprintf(os.Stderr, "Error: remove requires a pattern\n")
		fmt.Fprintf(os.Stderr, "Usage: accesskeeper remove [--force] <pattern>\n")
		os.Exit(1)
	}

	sess, journal, passphrase, _ := openSession(opts)
	defer finish(sess, journal, passphrase)

	found, err := sess.Search(pattern)
	if err != nil {
		HandleError(err)
	}
	if len(found) == 0 {
		fmt.Println("No matching credentials")
		return
	}

	fmt.Printf("Found %d credentials:\n", len(found))
	for _, c := range found {
		fmt.Println(c.Display())
	}

	if !force {
		fmt.Print("Enter 'yes' to remove or anything else to cancel: ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "yes" {
			fmt.Println("Skip removing")
			return
		}
	}

	removed, err := sess.Remove(pattern)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("%d credentials removed successfully\n", removed)
}
