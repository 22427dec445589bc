package cmd

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// New input is resource login password, optionally followed by kind and an
// update date. Same shape the interactive prompt accepted.
var addInputPattern = regexp.MustCompile(`^\S{3,} \S{3,} \S{3,}( \S{3,40}){0,2}$`)

// Add inserts new credentials and commits them into a new snapshot.
func Add(opts Options, args []string) {
	raw := strings.TrimSpace(strings.Join(args, " "))
	if !addInputPattern.MatchString(raw) {
		fmt.Fprintf(os.Stderr, "Error: expected '<resource> <login> <password> [kind] [dd.mm.yyyy]'\n")
		os.Exit(1)
	}

	sess, journal, passphrase, _ := openSession(opts)
	defer finish(sess, journal, passphrase)

	added := sess.Add(raw)
	if added == 0 {
		fmt.Println("Credentials already present, nothing to add")
		return
	}
	fmt.Printf("Added %d credentials, %d total\n", added, sess.Len())
}
