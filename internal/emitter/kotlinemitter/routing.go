package kotlinemitter

import (
	"path"
	"strings"

	"github.com/mark3labs/swagger2retrofit/internal/naming"
)

// FileExtension is appended to every generated declaration file.
const FileExtension = ".kt"

const (
	modelDir   = "model"
	serviceDir = "service"
)

// Variant classifies a declaration for output routing.
type Variant int

const (
	VariantDTO Variant = iota
	VariantResponse
	VariantRequest
)

// Classify returns VariantResponse or VariantRequest for names ending in
// "response" or "request" (ignoring case), VariantDTO otherwise.
func Classify(name string) Variant {
	switch {
	case naming.IsResponseName(name):
		return VariantResponse
	case naming.IsRequestName(name):
		return VariantRequest
	default:
		return VariantDTO
	}
}

// Dir returns the subtree below model/ that holds the variant.
func (v Variant) Dir() string {
	switch v {
	case VariantResponse:
		return "response"
	case VariantRequest:
		return "request"
	default:
		return "dto"
	}
}

func (v Variant) String() string { return v.Dir() }

// Location is the output directory of a declaration: a variant subtree plus
// one segment per enclosing declaration.
type Location struct {
	Variant  Variant
	Segments []string
}

// RootLocation returns the location of a top-level components schema.
func RootLocation(schemaName string) Location {
	return Location{Variant: Classify(schemaName)}
}

// Nested returns the location of an object-typed property childName declared
// by the declaration parentName living at l. Children sit one level deeper,
// in a directory named after the lower-cased parent. A request or response
// child of a DTO subtree is moved to the matching sibling subtree.
func (l Location) Nested(parentName, childName string) Location {
	segs := make([]string, 0, len(l.Segments)+1)
	segs = append(segs, l.Segments...)
	segs = append(segs, strings.ReplaceAll(strings.ToLower(parentName), "/", "_"))

	v := l.Variant
	if v == VariantDTO {
		v = Classify(childName)
	}
	return Location{Variant: v, Segments: segs}
}

// Dir returns the slash-separated directory relative to the output root.
func (l Location) Dir() string {
	parts := append([]string{modelDir, l.Variant.Dir()}, l.Segments...)
	return path.Join(parts...)
}

// FilePath returns the relative path of the declaration className at l.
func (l Location) FilePath(className string) string {
	return path.Join(l.Dir(), className+FileExtension)
}

// ServiceFilePath returns the relative path of a service interface.
func ServiceFilePath(interfaceName string) string {
	return path.Join(serviceDir, interfaceName+FileExtension)
}
