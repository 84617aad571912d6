package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseAnswers reads a YAML answers document.
//
// Each key is a field name. The value is either a scalar (the raw answer) or a mapping
// with "value" and "required" keys:
//
//	character-name: Arthur Dent
//	is-new-lab: true
//	profile-url:
//	  value: https://example.com/?showuser=42
//	  required: true
//
// Scalars are kept exactly as written, so "True" stays "True" and is not the true literal.
func ParseAnswers(data []byte) (MapSource, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	m := make(MapSource)
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse answers: line %d: expected a mapping of field names", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		switch val.Kind {
		case yaml.ScalarNode:
			m[key.Value] = SourceField{Value: scalarValue(val)}
		case yaml.MappingNode:
			f, err := parseAnswerEntry(val)
			if err != nil {
				return nil, fmt.Errorf("parse answers: field %q: %w", key.Value, err)
			}
			m[key.Value] = f
		default:
			return nil, fmt.Errorf("parse answers: line %d: field %q must be a scalar or a mapping", val.Line, key.Value)
		}
	}

	return m, nil
}

// LoadAnswersFile reads and parses an answers file
func LoadAnswersFile(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return ParseAnswers(data)
}

func parseAnswerEntry(n *yaml.Node) (SourceField, error) {
	var f SourceField
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return f, fmt.Errorf("line %d: %q must be a scalar", val.Line, key.Value)
		}

		switch key.Value {
		case "value":
			f.Value = scalarValue(val)
		case "required":
			var required bool
			if err := val.Decode(&required); err != nil {
				return f, fmt.Errorf("line %d: required: %w", val.Line, err)
			}
			f.Required = required
		default:
			return f, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return f, nil
}

// scalarValue returns the literal text of a scalar; explicit nulls read as empty
func scalarValue(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}
