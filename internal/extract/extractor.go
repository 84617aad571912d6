package extract

import (
	"github.com/rp-magrathea/vogsphere/internal/model"
)

// Extractor reads the manifest's fields from a source and coerces them to typed answers
type Extractor struct {
	manifest    model.Manifest
	trueLiteral string
}

// NewExtractor creates an extractor for the given manifest and boolean true literal
func NewExtractor(manifest model.Manifest, trueLiteral string) *Extractor {
	return &Extractor{
		manifest:    manifest,
		trueLiteral: trueLiteral,
	}
}

// Extraction is the outcome of reading one source
type Extraction struct {
	Fields []model.AnswerField // Manifest declaration order
	Record model.AnswerRecord
}

// Extract reads every manifest field from src.
// Missing fields and unsupported kinds are configuration problems; all of them are reported.
func (e *Extractor) Extract(src FieldSource) (*Extraction, model.Problems) {
	var problems model.Problems
	var fields []model.AnswerField
	text := make(map[string]string)
	flags := make(map[string]bool)

	for _, group := range e.manifest {
		kind, supported := model.ParseFieldKind(group.Kind)

		for _, name := range group.Names {
			raw, ok := src.Lookup(name)
			if !ok {
				problems = append(problems, model.ConfigProblem(name,
					"could not find field with name %q in form. Contact admin", name))
				continue
			}
			if !supported {
				problems = append(problems, model.ConfigProblem(name,
					"form field type %q is unsupported. Contact admin", group.Kind))
				continue
			}

			switch kind {
			case model.KindText:
				text[name] = raw.Value
			case model.KindBool:
				flags[name] = e.CoerceBool(raw.Value)
			}

			fields = append(fields, model.AnswerField{
				Name:     name,
				Kind:     kind,
				RawValue: raw.Value,
				Required: raw.Required,
			})
		}
	}

	return &Extraction{
		Fields: fields,
		Record: model.NewAnswerRecord(text, flags),
	}, problems
}

// CoerceBool is true iff raw is exactly the configured true literal
func (e *Extractor) CoerceBool(raw string) bool {
	return raw == e.trueLiteral
}
