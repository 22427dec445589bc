package vault

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultKind is assumed when a stored line omits the kind field.
	DefaultKind = "authentication"

	// DateLayout is the update-date format carried in every record.
	DateLayout = "02.01.2006"

	lineSeparator = "\n"
	displayPad    = "     " // 5 spaces, stable: search patterns match against it

	minLineFields = 3 // resource login password
	maxLineFields = 5 // + kind, updated_on
)

var datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ValidationError reports a credential field that cannot be stored in the
// whitespace-delimited snapshot format.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Credential is one secret entry. Values are immutable after construction;
// replace the record instead of mutating it. The ID is assigned at load or
// add time and orders display output only, it is not part of the record's
// identity and is never persisted.
type Credential struct {
	ID        int
	Resource  string
	Login     string
	Password  string
	Kind      string
	UpdatedOn string
}

// NewCredential validates the fields and builds a record. Empty kind and
// updatedOn take their defaults (DefaultKind, today's date).
func NewCredential(id int, resource, login, password, kind, updatedOn string) (Credential, error) {
	if kind == "" {
		kind = DefaultKind
	}
	if updatedOn == "" {
		updatedOn = time.Now().Format(DateLayout)
	}

	c := Credential{
		ID:        id,
		Resource:  resource,
		Login:     login,
		Password:  password,
		Kind:      kind,
		UpdatedOn: updatedOn,
	}

	for field, value := range map[string]string{
		"resource":   c.Resource,
		"login":      c.Login,
		"password":   c.Password,
		"kind":       c.Kind,
		"updated_on": c.UpdatedOn,
	} {
		if value == "" {
			return Credential{}, &ValidationError{Field: field, Reason: "must not be empty"}
		}
		if strings.ContainsFunc(value, unicode.IsSpace) {
			return Credential{}, &ValidationError{Field: field, Reason: "must not contain whitespace"}
		}
	}
	if !datePattern.MatchString(c.UpdatedOn) {
		return Credential{}, &ValidationError{Field: "updated_on", Reason: fmt.Sprintf("wrong date string: %s", c.UpdatedOn)}
	}
	return c, nil
}

// ParseLine parses one whitespace-delimited snapshot line into a record
// with the given ID. The line carries 3 to 5 fields; anything else fails.
func ParseLine(line string, id int) (Credential, error) {
	fields := strings.Fields(line)
	if len(fields) < minLineFields {
		return Credential{}, fmt.Errorf("expected at least %d fields, got %d", minLineFields, len(fields))
	}
	if len(fields) > maxLineFields {
		return Credential{}, fmt.Errorf("expected at most %d fields, got %d", maxLineFields, len(fields))
	}
	for len(fields) < maxLineFields {
		fields = append(fields, "")
	}
	return NewCredential(id, fields[0], fields[1], fields[2], fields[3], fields[4])
}

// ParseLines parses a multi-line blob into records with sequential IDs
// starting at startID. Invalid lines are logged and skipped; one bad line
// never aborts parsing the rest.
func ParseLines(logger *slog.Logger, text string, startID int) []Credential {
	var records []Credential
	id := startID
	for i, line := range strings.Split(text, lineSeparator) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := ParseLine(line, id)
		if err != nil {
			logger.Error("invalid line, skip parsing the line", "line", i+1, "error", err)
			continue
		}
		records = append(records, c)
		id++
	}
	return records
}

// Line serializes the record to the snapshot format, omitting the ID.
// ParseLine inverts it exactly.
func (c Credential) Line() string {
	return strings.Join([]string{c.Resource, c.Login, c.Password, c.Kind, c.UpdatedOn}, " ")
}

// Display renders the record for humans, all fields joined by fixed
// padding. Search patterns are matched against this string.
func (c Credential) Display() string {
	return strings.Join([]string{
		strconv.Itoa(c.ID), c.Resource, c.Login, c.Password, c.Kind, c.UpdatedOn,
	}, displayPad)
}
