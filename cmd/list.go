package cmd

import (
	"fmt"
)

// List prints every credential in the store.
func List(opts Options) {
	sess, journal, passphrase, _ := openSession(opts)
	defer finish(sess, journal, passphrase)

	records := sess.Records()
	if len(records) == 0 {
		fmt.Println("No credentials stored")
		return
	}

	fmt.Printf("%d credentials:\n", len(records))
	for _, c := range records {
		fmt.Println(c.Display())
	}
}
