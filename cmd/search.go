package cmd

import (
	"fmt"
	"os"
	"regexp"
)

// Minimum useful search input, from the interactive prompt rules.
var searchInputPattern = regexp.MustCompile(`.{3,}`)

// Search finds credentials matching the pattern and prints them.
func Search(opts Options, pattern string) {
	if !searchInputPattern.MatchString(pattern) {
		fmt.Fprintf(os.Stderr, "Error: search pattern must be at least 3 characters\n")
		os.Exit(1)
	}

	sess, journal, passphrase, _ := openSession(opts)
	defer finish(sess, journal, passphrase)

	found, err := sess.Search(pattern)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Found %d credentials\n", len(found))
	for _, c := range found {
		fmt.Println(c.Display())
	}
}
