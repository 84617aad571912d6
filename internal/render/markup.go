package render

import "strings"

// Square brackets are written as HTML entities so the forum does not parse
// the generated tags before an admin has pasted them where they belong.
const (
	LeftBracket  = "&#91;"
	RightBracket = "&#93;"
)

var bracketEscaper = strings.NewReplacer("[", LeftBracket, "]", RightBracket)

// Escape entity-encodes any square brackets in an answer value
func Escape(value string) string {
	return bracketEscaper.Replace(value)
}

// OpenTag returns [tag]
func OpenTag(tag string) string {
	return LeftBracket + tag + RightBracket
}

// OpenTagParam returns [tag="param"]. Double quotes in param become &quot; so they cannot end it.
func OpenTagParam(tag, param string) string {
	return LeftBracket + tag + `="` + strings.ReplaceAll(param, `"`, "&quot;") + `"` + RightBracket
}

// CloseTag returns [/tag]
func CloseTag(tag string) string {
	return LeftBracket + "/" + tag + RightBracket
}

// Wrap returns content between [tag] and [/tag]
func Wrap(tag, content string) string {
	return OpenTag(tag) + content + CloseTag(tag)
}

// Bold returns [b]content[/b]
func Bold(content string) string {
	return Wrap("b", content)
}

// URL returns [url="address"]address[/url]
func URL(address string) string {
	address = Escape(address)
	return OpenTagParam("url", address) + address + CloseTag("url")
}
