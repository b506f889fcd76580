package kotlinemitter

import (
	"strings"
	"unicode"

	"github.com/mark3labs/swagger2retrofit/internal/naming"
)

// hard keywords cannot be used as identifiers without backticks
var kotlinKeywords = map[string]struct{}{
	"as": {}, "break": {}, "class": {}, "continue": {}, "do": {}, "else": {},
	"false": {}, "for": {}, "fun": {}, "if": {}, "in": {}, "interface": {},
	"is": {}, "null": {}, "object": {}, "package": {}, "return": {}, "super": {},
	"this": {}, "throw": {}, "true": {}, "try": {}, "typealias": {}, "typeof": {},
	"val": {}, "var": {}, "when": {}, "while": {},
}

func escapeIdentifier(name string) string {
	if _, ok := kotlinKeywords[name]; ok {
		return "`" + name + "`"
	}
	return name
}

// pascalSegment turns a path segment or header-style name into a PascalCase
// word: characters that cannot appear in an identifier act as word
// separators, so "order-items" becomes "OrderItems".
func pascalSegment(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return naming.WordSeparator
	}, s)
	return naming.ToUpperCamel(cleaned)
}

// parameterName derives the Kotlin parameter name for a wire name.
func parameterName(raw string) string {
	name := naming.LowerFirst(pascalSegment(raw))
	if name == "" {
		name = "param"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "p" + name
	}
	return escapeIdentifier(name)
}
