package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rp-magrathea/vogsphere/internal/model"
)

// WriteResult writes a result as plain text (the document, or one ERROR line per problem)
// or as indented JSON
func WriteResult(w io.Writer, res *Result, format string) error {
	switch strings.ToLower(format) {
	case "", model.FormatText:
		var text string
		if res.OK() {
			text = res.Document + "\n"
		} else {
			text = strings.Join(res.Problems.Lines(), "\n") + "\n"
		}
		if _, err := io.WriteString(w, text); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil

	case model.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (supported: text, json)", format)
	}
}
