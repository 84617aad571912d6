package validate

import (
	"github.com/rp-magrathea/vogsphere/internal/model"
)

// Cross-field messages, in the order the rules are evaluated
const (
	MsgMissingLabDescription = "missing lab description"
	MsgMissingLabName        = "missing name of lab"
	MsgMissingMemberGroup    = "missing member group selection"
	MsgMissingRequester      = "need requester name or request location"
)

// Rule is one cross-field check. It returns the problem and true when the record violates it.
type Rule struct {
	Name  string
	Check func(s model.Submission) (model.Problem, bool)
}

// Validator checks extracted answers for missing and contradictory input
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator with the standard claim rules
func NewValidator() *Validator {
	return &Validator{rules: DefaultRules()}
}

// Validate returns every problem with the answers: required-field problems in field order,
// then cross-field problems in rule order. A fresh list is built on each call.
func (v *Validator) Validate(fields []model.AnswerField, record model.AnswerRecord) model.Problems {
	var problems model.Problems

	for _, f := range fields {
		if f.Kind != model.KindText || !f.Required {
			continue
		}
		if record.Text(f.Name) == "" {
			problems = append(problems, model.ValidationProblem(f.Name, "missing %s", f.PrettyName()))
		}
	}

	s := record.Submission()
	for _, rule := range v.rules {
		if p, violated := rule.Check(s); violated {
			problems = append(problems, p)
		}
	}

	return problems
}

// DefaultRules returns the claim form's cross-field rules in reporting order
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "lab-description",
			Check: func(s model.Submission) (model.Problem, bool) {
				return model.ValidationProblem(model.FieldLabDescription, MsgMissingLabDescription),
					s.IsScientist() && s.IsNewLab && s.LabDescription == ""
			},
		},
		{
			Name: "lab-name",
			Check: func(s model.Submission) (model.Problem, bool) {
				return model.ValidationProblem(model.FieldLabName, MsgMissingLabName),
					s.IsScientist() && s.LabName == ""
			},
		},
		{
			Name: "member-group",
			Check: func(s model.Submission) (model.Problem, bool) {
				return model.ValidationProblem(model.FieldMemberGroup, MsgMissingMemberGroup),
					s.MemberGroup == ""
			},
		},
		{
			Name: "requester",
			Check: func(s model.Submission) (model.Problem, bool) {
				return model.ValidationProblem(model.FieldRequester, MsgMissingRequester),
					s.IsRequested && s.Requester == "" && s.RequestLocation == ""
			},
		},
	}
}
