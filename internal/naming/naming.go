// Package naming converts identifiers between snake_case and camel case,
// inflects English nouns, and derives model class names.
package naming

import (
	"strings"
	"unicode/utf8"

	pluralize "github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordSeparator is the separator used by snake_case identifiers.
const WordSeparator = '_'

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)

	inflector = pluralize.NewClient()
)

// UpperFirst upper-cases the first character of s and leaves the rest alone.
func UpperFirst(s string) string {
	return mapFirst(s, upper)
}

// LowerFirst lower-cases the first character of s and leaves the rest alone.
func LowerFirst(s string) string {
	return mapFirst(s, lower)
}

func mapFirst(s string, c cases.Caser) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return c.String(s[:size]) + s[size:]
}

// SplitToUpperCamel splits s on sep and joins the words with their first
// character upper-cased: SplitToUpperCamel("pet_owner", '_') == "PetOwner".
func SplitToUpperCamel(s string, sep rune) string {
	words := strings.Split(s, string(sep))
	var b strings.Builder
	b.Grow(len(s))
	for _, w := range words {
		b.WriteString(UpperFirst(w))
	}
	return b.String()
}

// SplitToLowerCamel is SplitToUpperCamel with the first character of the
// result lower-cased. The decoder side uses it with '/' separators.
func SplitToLowerCamel(s string, sep rune) string {
	return LowerFirst(SplitToUpperCamel(s, sep))
}

// ToUpperCamel converts a snake_case identifier to UpperCamelCase.
func ToUpperCamel(s string) string {
	return SplitToUpperCamel(s, WordSeparator)
}

// ToLowerCamel converts a snake_case identifier to lowerCamelCase.
func ToLowerCamel(s string) string {
	return SplitToLowerCamel(s, WordSeparator)
}

// IsSnakeCase reports whether s contains the snake_case separator.
func IsSnakeCase(s string) bool {
	return strings.ContainsRune(s, WordSeparator)
}

// Singularize returns the singular form of an English noun.
func Singularize(word string) string {
	if word == "" {
		return word
	}
	return inflector.Singular(word)
}

// Pluralize returns the plural form of an English noun.
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	return inflector.Plural(word)
}

const (
	dtoSuffix      = "Dto"
	responseSuffix = "response"
	requestSuffix  = "request"
)

// IsResponseName reports whether name ends in "response", ignoring case.
func IsResponseName(name string) bool {
	return hasSuffixFold(name, responseSuffix)
}

// IsRequestName reports whether name ends in "request", ignoring case.
func IsRequestName(name string) bool {
	return hasSuffixFold(name, requestSuffix)
}

// ModelClassName derives the declaration name for a schema or property:
// the upper camel form, suffixed "Dto" unless it already names a request or
// response.
func ModelClassName(raw string) string {
	name := ToUpperCamel(raw)
	if IsResponseName(name) || IsRequestName(name) {
		return name
	}
	return name + dtoSuffix
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
