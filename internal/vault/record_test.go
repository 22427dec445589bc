package vault

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewCredentialDefaults(t *testing.T) {
	c, err := NewCredential(1, "site.com", "login", "password", "", "")
	if err != nil {
		t.Fatalf("NewCredential failed: %v", err)
	}
	if c.Kind != DefaultKind {
		t.Errorf("Kind: got %q, want %q", c.Kind, DefaultKind)
	}
	today := time.Now().Format(DateLayout)
	if c.UpdatedOn != today {
		t.Errorf("UpdatedOn: got %q, want %q", c.UpdatedOn, today)
	}
}

func TestNewCredentialRejectsWhitespace(t *testing.T) {
	cases := []struct {
		name     string
		resource string
		login    string
		password string
	}{
		{"space in resource", "site com", "login", "password"},
		{"tab in login", "site.com", "log\tin", "password"},
		{"newline in password", "site.com", "login", "pass\nword"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCredential(1, tc.resource, tc.login, tc.password, "", "")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNewCredentialRejectsEmptyField(t *testing.T) {
	_, err := NewCredential(1, "site.com", "", "password", "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Field != "login" {
		t.Errorf("Field: got %q, want login", verr.Field)
	}
}

func TestNewCredentialRejectsBadDate(t *testing.T) {
	for _, date := range []string{"1.1.2026", "2026-01-01", "32.13.20", "today"} {
		_, err := NewCredential(1, "site.com", "login", "password", "", date)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Date %q: expected ValidationError, got %v", date, err)
		}
	}
}

func TestParseLineFieldCounts(t *testing.T) {
	// 3 fields: kind and date take defaults
	c, err := ParseLine("site.com login password", 1)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if c.Kind != DefaultKind {
		t.Errorf("Kind: got %q, want %q", c.Kind, DefaultKind)
	}

	// 5 fields: everything explicit
	c, err = ParseLine("site.com login password api-token 01.06.2026", 2)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if c.Kind != "api-token" || c.UpdatedOn != "01.06.2026" {
		t.Errorf("Unexpected record: %+v", c)
	}

	// Too few and too many fields fail
	if _, err := ParseLine("site.com login", 3); err == nil {
		t.Error("Expected error for 2 fields")
	}
	if _, err := ParseLine("a b c d 01.01.2026 extra", 4); err == nil {
		t.Error("Expected error for 6 fields")
	}
}

func TestLineRoundTrip(t *testing.T) {
	orig, err := NewCredential(7, "site.com", "login", "password", "api-token", "15.03.2026")
	if err != nil {
		t.Fatalf("NewCredential failed: %v", err)
	}

	parsed, err := ParseLine(orig.Line(), 7)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if parsed != orig {
		t.Errorf("Round trip mismatch: got %+v, want %+v", parsed, orig)
	}
}

func TestLineOmitsID(t *testing.T) {
	c, err := NewCredential(42, "site.com", "login", "password", "", "01.01.2026")
	if err != nil {
		t.Fatalf("NewCredential failed: %v", err)
	}
	if strings.Contains(c.Line(), "42") {
		t.Errorf("Line should not carry the ID: %q", c.Line())
	}
	if !strings.HasPrefix(c.Display(), "42") {
		t.Errorf("Display should start with the ID: %q", c.Display())
	}
}

func TestParseLinesSkipsInvalid(t *testing.T) {
	text := strings.Join([]string{
		"site.com login password",
		"too few",
		"",
		"other.com user pass api-token 01.06.2026",
		"bad.com user pass kind not-a-date",
	}, "\n")

	records := ParseLines(discardLogger(), text, 1)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("IDs should be sequential: %d, %d", records[0].ID, records[1].ID)
	}
	if records[1].Resource != "other.com" {
		t.Errorf("Resource: got %q, want other.com", records[1].Resource)
	}
}
