package prompts

import (
	"strings"
	"testing"
)

func TestGetKnownPrompt(t *testing.T) {
	prompt, err := Get("optimize.json", "requirements")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(prompt, "sectionOrder") {
		t.Errorf("requirements prompt missing sectionOrder rule: %q", prompt)
	}
}

func TestGetMissingKey(t *testing.T) {
	if _, err := Get("optimize.json", "no_such_key"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGetMissingFile(t *testing.T) {
	if _, err := Get("missing.json", "requirements"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormat(t *testing.T) {
	got := Format("applying for: {{.JobDescription}}", map[string]string{"JobDescription": "senior PM"})
	if got != "applying for: senior PM" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	got := Format("{{.Unset}} stays", map[string]string{"Other": "x"})
	if got != "{{.Unset}} stays" {
		t.Errorf("Format() = %q", got)
	}
}
