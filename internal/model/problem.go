package model

import (
	"fmt"
	"strings"
)

// ProblemKind separates form/manifest drift from ordinary answer mistakes
type ProblemKind string

const (
	ProblemConfig     ProblemKind = "config"     // Form and manifest are out of sync; alert an admin
	ProblemValidation ProblemKind = "validation" // Member input is missing or contradictory
)

// Problem is one human-readable reason a claim cannot be generated
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	Field   string      `json:"field,omitempty"` // Field the problem is about, if any
	Message string      `json:"message"`
}

// String returns the display line for the problem
func (p Problem) String() string {
	return "ERROR: " + p.Message
}

// ConfigProblem creates a problem of kind ProblemConfig
func ConfigProblem(field, format string, args ...interface{}) Problem {
	return Problem{Kind: ProblemConfig, Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationProblem creates a problem of kind ProblemValidation
func ValidationProblem(field, format string, args ...interface{}) Problem {
	return Problem{Kind: ProblemValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Problems is an ordered list of problems
type Problems []Problem

// Lines returns one display line per problem, in order
func (ps Problems) Lines() []string {
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.String()
	}
	return lines
}

// OfKind returns the problems of the given kind, preserving order
func (ps Problems) OfKind(kind ProblemKind) Problems {
	var out Problems
	for _, p := range ps {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// HasConfig reports whether any problem is a configuration problem
func (ps Problems) HasConfig() bool {
	return len(ps.OfKind(ProblemConfig)) > 0
}

// Err returns nil for an empty list, otherwise a *ValidationError holding a copy of the list
func (ps Problems) Err() error {
	if len(ps) == 0 {
		return nil
	}
	return &ValidationError{Problems: append(Problems(nil), ps...)}
}

// ValidationError carries every problem found in one generation attempt
type ValidationError struct {
	Problems Problems
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems.Lines(), "\n")
}
