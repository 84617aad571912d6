package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrFormNotFound is returned when the requested form id is not in the document
var ErrFormNotFound = errors.New("form not found")

// FormSource is a FieldSource read from an HTML form document
type FormSource struct {
	fields map[string]SourceField
	names  []string // Document order
	set    map[string]bool
}

// ParseForm reads the controls of an HTML document.
// If formID is non-empty only the form with that id (or name) is read.
func ParseForm(r io.Reader, formID string) (*FormSource, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	root := doc
	if formID != "" {
		root = findForm(doc, formID)
		if root == nil {
			return nil, fmt.Errorf("%w: %q", ErrFormNotFound, formID)
		}
	}

	src := &FormSource{
		fields: make(map[string]SourceField),
		set:    make(map[string]bool),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input":
				src.addInput(n)
			case "select":
				src.addSelect(n)
				return
			case "textarea":
				src.addTextarea(n)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return src, nil
}

// Lookup returns the control state for name
func (s *FormSource) Lookup(name string) (SourceField, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Names returns the control names in document order
func (s *FormSource) Names() []string {
	return append([]string(nil), s.names...)
}

// add records a control. The first control in a group that carries a value wins,
// and required on any member marks the whole group required.
func (s *FormSource) add(name, value string, hasValue, required bool) {
	if name == "" {
		return
	}

	f, exists := s.fields[name]
	if !exists {
		s.names = append(s.names, name)
	}
	if hasValue && !s.set[name] {
		f.Value = value
		s.set[name] = true
	}
	f.Required = f.Required || required
	s.fields[name] = f
}

func (s *FormSource) addInput(n *html.Node) {
	name, _ := attr(n, "name")
	inputType, _ := attr(n, "type")
	required := hasAttr(n, "required")

	switch strings.ToLower(inputType) {
	case "submit", "button", "reset", "image":
		return
	case "checkbox", "radio":
		value, ok := attr(n, "value")
		if !ok {
			value = "on"
		}
		s.add(name, value, hasAttr(n, "checked"), required)
	default:
		value, _ := attr(n, "value")
		s.add(name, value, true, required)
	}
}

func (s *FormSource) addSelect(n *html.Node) {
	name, _ := attr(n, "name")

	var first, selected *html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			if first == nil {
				first = c
			}
			if selected == nil && hasAttr(c, "selected") {
				selected = c
			}
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)

	chosen := selected
	if chosen == nil && !hasAttr(n, "multiple") {
		chosen = first
	}

	value := ""
	if chosen != nil {
		value = optionValue(chosen)
	}
	s.add(name, value, true, hasAttr(n, "required"))
}

func (s *FormSource) addTextarea(n *html.Node) {
	name, _ := attr(n, "name")
	s.add(name, textContent(n), true, hasAttr(n, "required"))
}

// optionValue is the value attribute, or the whitespace-collapsed text when there is none
func optionValue(n *html.Node) string {
	if v, ok := attr(n, "value"); ok {
		return v
	}
	return strings.Join(strings.Fields(textContent(n)), " ")
}

func findForm(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "form" {
		if v, _ := attr(n, "id"); v == id {
			return n
		}
		if v, _ := attr(n, "name"); v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findForm(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return buf.String()
}
