package extract

import (
	"fmt"
	"strings"
)

// SourceField is the raw state of one named form control
type SourceField struct {
	Value    string
	Required bool
}

// FieldSource provides named raw values, the way a form exposes its elements
type FieldSource interface {
	Lookup(name string) (SourceField, bool)
}

// MapSource is a FieldSource backed by a plain map
type MapSource map[string]SourceField

// Lookup returns the field stored under name
func (m MapSource) Lookup(name string) (SourceField, bool) {
	f, ok := m[name]
	return f, ok
}

// Merge returns a new MapSource holding base with every field of override applied on top
func Merge(base, override MapSource) MapSource {
	m := make(MapSource, len(base)+len(override))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range override {
		m[k] = v
	}
	return m
}

// Overlay lets answers fill in the values of a form.
// The form decides which fields exist and which are required.
type Overlay struct {
	Form    FieldSource
	Answers FieldSource
}

// Lookup returns the form's field with its value replaced by the answer, if one was given
func (o Overlay) Lookup(name string) (SourceField, bool) {
	f, ok := o.Form.Lookup(name)
	if !ok {
		return SourceField{}, false
	}
	if o.Answers != nil {
		if a, ok := o.Answers.Lookup(name); ok {
			f.Value = a.Value
		}
	}
	return f, true
}

// ParseSet parses name=value pairs as given on the command line
func ParseSet(pairs []string) (MapSource, error) {
	m := make(MapSource, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field assignment %q (want name=value)", p)
		}
		m[name] = SourceField{Value: value}
	}
	return m, nil
}
