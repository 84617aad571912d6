package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FieldKind is how a raw form value is coerced
type FieldKind string

const (
	KindText FieldKind = "text" // Passed through unchanged
	KindBool FieldKind = "bool" // True iff raw value equals the configured true literal
)

// ParseFieldKind maps a manifest kind name to a FieldKind.
// "boolean" is accepted as an alias of "bool".
func ParseFieldKind(s string) (FieldKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return KindText, true
	case "bool", "boolean":
		return KindBool, true
	default:
		return FieldKind(s), false
	}
}

// Field names read by the validation rules and claim templates
const (
	FieldWriterAlias     = "writer-alias"
	FieldFaceClaim       = "face-claim"
	FieldMemberGroup     = "member-group"
	FieldCharacterName   = "character-name"
	FieldLabDescription  = "lab-description"
	FieldLabName         = "lab-name"
	FieldOccupation      = "occupation"
	FieldRequester       = "requester"
	FieldRequestLocation = "request-location"
	FieldProfileURL      = "profile-url"
	FieldIsLabLead       = "is-lab-lead"
	FieldIsNewLab        = "is-new-lab"
	FieldIsRequested     = "is-requested"
)

// MemberGroupScientist is the member group that owns labs
const MemberGroupScientist = "scientist"

// FieldGroup is one block of the manifest: a kind and the names declared under it
type FieldGroup struct {
	Kind  string   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Names []string `json:"names" yaml:"names" mapstructure:"names"`
}

// Manifest lists the expected form fields in declaration order
type Manifest []FieldGroup

// DefaultManifest returns the field manifest used by the stock claim form
func DefaultManifest() Manifest {
	return Manifest{
		{
			Kind: string(KindText),
			Names: []string{
				FieldWriterAlias,
				FieldFaceClaim,
				FieldMemberGroup,
				FieldCharacterName,
				FieldLabDescription,
				FieldLabName,
				FieldOccupation,
				FieldRequester,
				FieldRequestLocation,
				FieldProfileURL,
			},
		},
		{
			Kind:  string(KindBool),
			Names: []string{FieldIsLabLead, FieldIsNewLab, FieldIsRequested},
		},
	}
}

// requiredFields are the fields the rules and templates depend on
var requiredFields = map[string]FieldKind{
	FieldWriterAlias:     KindText,
	FieldFaceClaim:       KindText,
	FieldMemberGroup:     KindText,
	FieldCharacterName:   KindText,
	FieldLabDescription:  KindText,
	FieldLabName:         KindText,
	FieldOccupation:      KindText,
	FieldRequester:       KindText,
	FieldRequestLocation: KindText,
	FieldProfileURL:      KindText,
	FieldIsLabLead:       KindBool,
	FieldIsNewLab:        KindBool,
	FieldIsRequested:     KindBool,
}

// Check verifies the manifest declares every field the generator reads, with the right kind,
// and that no name is declared twice. Groups with an unknown kind are left for the extractor
// to report per run.
func (m Manifest) Check() error {
	declared := make(map[string]FieldKind)
	for _, g := range m {
		kind, ok := ParseFieldKind(g.Kind)
		for _, name := range g.Names {
			if _, dup := declared[name]; dup {
				return fmt.Errorf("field %q declared more than once", name)
			}
			if ok {
				declared[name] = kind
			} else {
				declared[name] = ""
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(requiredFields)) {
		want := requiredFields[name]
		got, ok := declared[name]
		if !ok {
			return fmt.Errorf("field %q missing from manifest", name)
		}
		if got != "" && got != want {
			return fmt.Errorf("field %q declared as %s, want %s", name, got, want)
		}
	}
	return nil
}

// Names returns every declared field name in declaration order
func (m Manifest) Names() []string {
	var names []string
	for _, g := range m {
		names = append(names, g.Names...)
	}
	return names
}

// AnswerField is one named input as read from the form
type AnswerField struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	RawValue string    `json:"raw_value"`
	Required bool      `json:"required"` // Declared by the form, not by the manifest
}

// PrettyName returns the field name with underscores and hyphens replaced by spaces
func (f AnswerField) PrettyName() string {
	return PrettyName(f.Name)
}

var prettyReplacer = strings.NewReplacer("_", " ", "-", " ")

// PrettyName makes a field name readable in an error message
func PrettyName(name string) string {
	return prettyReplacer.Replace(name)
}

// AnswerRecord maps field names to typed values. It is immutable after construction.
type AnswerRecord struct {
	text  map[string]string
	flags map[string]bool
}

// NewAnswerRecord builds a record from copies of the given maps
func NewAnswerRecord(text map[string]string, flags map[string]bool) AnswerRecord {
	r := AnswerRecord{
		text:  make(map[string]string, len(text)),
		flags: make(map[string]bool, len(flags)),
	}
	for k, v := range text {
		r.text[k] = v
	}
	for k, v := range flags {
		r.flags[k] = v
	}
	return r
}

// Text returns a text answer, or "" when the field is not in the record
func (r AnswerRecord) Text(name string) string {
	return r.text[name]
}

// Bool returns a boolean answer, or false when the field is not in the record
func (r AnswerRecord) Bool(name string) bool {
	return r.flags[name]
}

// Submission is the typed view of a record that the claim templates consume
type Submission struct {
	CharacterName   string
	FaceClaim       string
	MemberGroup     string
	ProfileURL      string
	WriterAlias     string
	Occupation      string
	LabName         string
	LabDescription  string
	Requester       string
	RequestLocation string

	IsLabLead   bool
	IsNewLab    bool
	IsRequested bool
}

// Submission reads the well-known fields out of the record
func (r AnswerRecord) Submission() Submission {
	return Submission{
		CharacterName:   r.Text(FieldCharacterName),
		FaceClaim:       r.Text(FieldFaceClaim),
		MemberGroup:     r.Text(FieldMemberGroup),
		ProfileURL:      r.Text(FieldProfileURL),
		WriterAlias:     r.Text(FieldWriterAlias),
		Occupation:      r.Text(FieldOccupation),
		LabName:         r.Text(FieldLabName),
		LabDescription:  r.Text(FieldLabDescription),
		Requester:       r.Text(FieldRequester),
		RequestLocation: r.Text(FieldRequestLocation),
		IsLabLead:       r.Bool(FieldIsLabLead),
		IsNewLab:        r.Bool(FieldIsNewLab),
		IsRequested:     r.Bool(FieldIsRequested),
	}
}

// IsScientist reports whether the member group owns labs
func (s Submission) IsScientist() bool {
	return s.MemberGroup == MemberGroupScientist
}
