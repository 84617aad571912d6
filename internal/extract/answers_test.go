package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAnswers(t *testing.T) {
	data := []byte(`
character-name: Arthur Dent
is-new-lab: true
is-lab-lead: True
occupation:
requester: ~
profile-url:
  value: https://example.com/?showuser=42
  required: true
lab-name: "42"
`)

	got, err := ParseAnswers(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := MapSource{
		"character-name": {Value: "Arthur Dent"},
		"is-new-lab":     {Value: "true"},
		"is-lab-lead":    {Value: "True"},
		"occupation":     {Value: ""},
		"requester":      {Value: ""},
		"profile-url":    {Value: "https://example.com/?showuser=42", Required: true},
		"lab-name":       {Value: "42"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Answers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAnswers_Empty(t *testing.T) {
	got, err := ParseAnswers(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no answers, got %d", len(got))
	}
}

func TestParseAnswers_Invalid(t *testing.T) {
	cases := map[string]string{
		"list root":      "- a\n- b\n",
		"nested list":    "occupation:\n  - a\n",
		"unknown key":    "occupation:\n  text: a\n",
		"bad required":   "occupation:\n  required: maybe\n",
		"malformed yaml": "occupation: [\n",
	}

	for name, doc := range cases {
		if _, err := ParseAnswers([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadAnswersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte("writer-alias: Zaphod\n"), 0644); err != nil {
		t.Fatalf("Failed to write answers: %v", err)
	}

	got, err := LoadAnswersFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got["writer-alias"].Value != "Zaphod" {
		t.Errorf("Unexpected writer alias: %q", got["writer-alias"].Value)
	}

	if _, err := LoadAnswersFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
