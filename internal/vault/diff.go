package vault

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// PendingDiff renders the changes Close would commit as a unified diff
// between the content loaded at open time and the current store content.
// Returns an empty string when nothing changed.
func (s *Session) PendingDiff() string {
	if !s.store.Dirty() {
		return ""
	}

	current := string(s.store.Serialize())
	base := string(s.baseline)
	if base == current {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(base, current)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(base, diffs)
	if len(patches) == 0 {
		return ""
	}

	from := s.snapshotPath
	if from == "" {
		from = "empty"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", from))
	result.WriteString("+++ pending snapshot\n")
	result.WriteString(dmp.PatchToText(patches))
	return result.String()
}
