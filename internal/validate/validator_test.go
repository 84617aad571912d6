package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rp-magrathea/vogsphere/internal/model"
)

// validText is an artist claim with every field filled in
func validText() map[string]string {
	return map[string]string{
		model.FieldWriterAlias:     "Zaphod",
		model.FieldFaceClaim:       "Martin Freeman",
		model.FieldMemberGroup:     "artist",
		model.FieldCharacterName:   "Arthur Dent",
		model.FieldLabDescription:  "",
		model.FieldLabName:         "",
		model.FieldOccupation:      "Sandwich maker",
		model.FieldRequester:       "",
		model.FieldRequestLocation: "",
		model.FieldProfileURL:      "https://example.com/?showuser=42",
	}
}

func messages(ps model.Problems) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Message)
	}
	return out
}

func TestValidator_Valid(t *testing.T) {
	record := model.NewAnswerRecord(validText(), nil)

	problems := NewValidator().Validate(nil, record)
	if len(problems) != 0 {
		t.Errorf("Expected no problems, got %v", problems)
	}
}

func TestValidator_RequiredFieldsInDeclarationOrder(t *testing.T) {
	text := validText()
	text[model.FieldWriterAlias] = ""
	text[model.FieldProfileURL] = ""
	text[model.FieldOccupation] = ""
	record := model.NewAnswerRecord(text, map[string]bool{model.FieldIsNewLab: false})

	fields := []model.AnswerField{
		{Name: model.FieldWriterAlias, Kind: model.KindText, Required: true},
		{Name: model.FieldOccupation, Kind: model.KindText, Required: false},
		{Name: model.FieldProfileURL, Kind: model.KindText, Required: true},
		{Name: model.FieldIsNewLab, Kind: model.KindBool, Required: true},
	}

	got := messages(NewValidator().Validate(fields, record))
	want := []string{"missing writer alias", "missing profile url"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Problems mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_CrossFieldOrder(t *testing.T) {
	text := validText()
	text[model.FieldMemberGroup] = ""
	text[model.FieldCharacterName] = ""
	record := model.NewAnswerRecord(text, map[string]bool{model.FieldIsRequested: true})
	fields := []model.AnswerField{
		{Name: model.FieldCharacterName, Kind: model.KindText, Required: true},
	}

	got := messages(NewValidator().Validate(fields, record))
	want := []string{"missing character name", MsgMissingMemberGroup, MsgMissingRequester}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Problems mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_ScientistWithNewLab(t *testing.T) {
	text := validText()
	text[model.FieldMemberGroup] = model.MemberGroupScientist
	record := model.NewAnswerRecord(text, map[string]bool{model.FieldIsNewLab: true})

	got := messages(NewValidator().Validate(nil, record))
	want := []string{MsgMissingLabDescription, MsgMissingLabName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Problems mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_ScientistExistingLab(t *testing.T) {
	text := validText()
	text[model.FieldMemberGroup] = model.MemberGroupScientist
	record := model.NewAnswerRecord(text, nil)

	got := messages(NewValidator().Validate(nil, record))
	want := []string{MsgMissingLabName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expected only the lab name problem without a new lab (-want +got):\n%s", diff)
	}
}

func TestValidator_LabNameOnlyForScientists(t *testing.T) {
	for _, group := range []string{"artist", "engineer", "Scientist", "scientists"} {
		text := validText()
		text[model.FieldMemberGroup] = group
		record := model.NewAnswerRecord(text, map[string]bool{model.FieldIsNewLab: true})

		for _, msg := range messages(NewValidator().Validate(nil, record)) {
			if msg == MsgMissingLabName || msg == MsgMissingLabDescription {
				t.Errorf("Group %q: unexpected lab problem %q", group, msg)
			}
		}
	}
}

func TestValidator_RequesterOrLocation(t *testing.T) {
	cases := []struct {
		name      string
		requester string
		location  string
		requested bool
		wantError bool
	}{
		{"requested with neither", "", "", true, true},
		{"requested with requester", "Ford", "", true, false},
		{"requested with location", "", "Discord DM", true, false},
		{"requested with both", "Ford", "Discord DM", true, false},
		{"not requested", "", "", false, false},
	}

	for _, tc := range cases {
		text := validText()
		text[model.FieldRequester] = tc.requester
		text[model.FieldRequestLocation] = tc.location
		record := model.NewAnswerRecord(text, map[string]bool{model.FieldIsRequested: tc.requested})

		found := false
		for _, msg := range messages(NewValidator().Validate(nil, record)) {
			if msg == MsgMissingRequester {
				found = true
			}
		}
		if found != tc.wantError {
			t.Errorf("%s: expected requester problem %v, got %v", tc.name, tc.wantError, found)
		}
	}
}

func TestValidator_FreshListPerCall(t *testing.T) {
	v := NewValidator()
	text := validText()
	text[model.FieldMemberGroup] = ""
	bad := model.NewAnswerRecord(text, nil)

	first := v.Validate(nil, bad)
	second := v.Validate(nil, model.NewAnswerRecord(validText(), nil))

	if len(first) != 1 {
		t.Errorf("Expected one problem on first call, got %v", first)
	}
	if len(second) != 0 {
		t.Errorf("Expected problems not to carry over between calls, got %v", second)
	}
}

func TestValidator_ProblemKinds(t *testing.T) {
	text := validText()
	text[model.FieldMemberGroup] = ""
	for _, p := range NewValidator().Validate(nil, model.NewAnswerRecord(text, nil)) {
		if p.Kind != model.ProblemValidation {
			t.Errorf("Expected validation kind, got %s", p.Kind)
		}
	}
}
