package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rp-magrathea/vogsphere/internal/model"
)

func completeSource() MapSource {
	m := make(MapSource)
	for _, name := range model.DefaultManifest().Names() {
		m[name] = SourceField{}
	}
	return m
}

func TestExtractor_MissingFieldsAreConfigProblems(t *testing.T) {
	src := completeSource()
	delete(src, model.FieldLabName)
	delete(src, model.FieldIsRequested)

	_, problems := NewExtractor(model.DefaultManifest(), "true").Extract(src)

	if len(problems) != 2 {
		t.Fatalf("Expected exactly one problem per missing field, got %d: %v", len(problems), problems)
	}
	for i, name := range []string{model.FieldLabName, model.FieldIsRequested} {
		if problems[i].Kind != model.ProblemConfig {
			t.Errorf("Problem %d: expected config kind, got %s", i, problems[i].Kind)
		}
		if problems[i].Field != name {
			t.Errorf("Problem %d: expected field %s, got %s", i, name, problems[i].Field)
		}
	}
}

func TestExtractor_UnsupportedKind(t *testing.T) {
	manifest := append(model.DefaultManifest(), model.FieldGroup{Kind: "date", Names: []string{"birthday", "absent"}})
	src := completeSource()
	src["birthday"] = SourceField{Value: "1978-03-08"}

	_, problems := NewExtractor(manifest, "true").Extract(src)

	want := model.Problems{
		model.ConfigProblem("birthday", "form field type %q is unsupported. Contact admin", "date"),
		model.ConfigProblem("absent", "could not find field with name %q in form. Contact admin", "absent"),
	}
	if diff := cmp.Diff(want, problems); diff != "" {
		t.Errorf("Problems mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_BoolCoercion(t *testing.T) {
	extractor := NewExtractor(model.DefaultManifest(), "true")

	cases := map[string]bool{
		"true":  true,
		"True":  false,
		"TRUE":  false,
		"1":     false,
		"yes":   false,
		"":      false,
		" true": false,
		"on":    false,
	}
	for raw, want := range cases {
		if got := extractor.CoerceBool(raw); got != want {
			t.Errorf("CoerceBool(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestExtractor_CustomTrueLiteral(t *testing.T) {
	src := completeSource()
	src[model.FieldIsNewLab] = SourceField{Value: "on"}
	src[model.FieldIsLabLead] = SourceField{Value: "true"}

	ex, problems := NewExtractor(model.DefaultManifest(), "on").Extract(src)
	if len(problems) != 0 {
		t.Fatalf("Expected no problems, got %v", problems)
	}

	if !ex.Record.Bool(model.FieldIsNewLab) {
		t.Error("Expected 'on' to be true with custom literal")
	}
	if ex.Record.Bool(model.FieldIsLabLead) {
		t.Error("Expected 'true' to be false with custom literal")
	}
}

func TestExtractor_TextPassThrough(t *testing.T) {
	src := completeSource()
	src[model.FieldOccupation] = SourceField{Value: "  Towel maker  ", Required: true}

	ex, problems := NewExtractor(model.DefaultManifest(), "true").Extract(src)
	if len(problems) != 0 {
		t.Fatalf("Expected no problems, got %v", problems)
	}

	if got := ex.Record.Text(model.FieldOccupation); got != "  Towel maker  " {
		t.Errorf("Expected raw text unchanged, got %q", got)
	}
	if ex.Record.Text(model.FieldRequester) != "" {
		t.Error("Expected empty text field to read as empty string")
	}

	if len(ex.Fields) != len(model.DefaultManifest().Names()) {
		t.Fatalf("Expected one field per manifest entry, got %d", len(ex.Fields))
	}
	for i, name := range model.DefaultManifest().Names() {
		if ex.Fields[i].Name != name {
			t.Errorf("Field %d: expected %s, got %s", i, name, ex.Fields[i].Name)
		}
	}

	var occupation model.AnswerField
	for _, f := range ex.Fields {
		if f.Name == model.FieldOccupation {
			occupation = f
		}
	}
	if !occupation.Required || occupation.Kind != model.KindText {
		t.Errorf("Unexpected occupation field: %+v", occupation)
	}
}
