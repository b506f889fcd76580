package kotlinemitter

import (
	"log/slog"

	"github.com/speakeasy-api/openapi/sequencedmap"

	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

// Kotlin type expressions produced by the mapper.
const (
	TypeString  = "String"
	TypeDouble  = "Double"
	TypeInt     = "Int"
	TypeBoolean = "Boolean"
	// TypeAny is the dynamic fallback for untyped nodes and unresolved
	// references.
	TypeAny = "Any"
)

// TypeMapper maps schema nodes to Kotlin type expressions.
//
// When Components is set, references are checked against it and a reference
// to a missing schema degrades to TypeAny instead of failing the run. The
// zero value accepts every reference.
type TypeMapper struct {
	Components *sequencedmap.Map[string, *genspec.Schema]
	Logger     *slog.Logger
}

// Resolve returns the type of node. knownObjectName names the declaration
// an object-typed (or untyped) node is assumed to refer to; empty means the
// dynamic fallback.
func (m TypeMapper) Resolve(node *genspec.Schema, knownObjectName string) string {
	if node == nil {
		return objectOr(knownObjectName)
	}
	switch node.Type {
	case genspec.TypeString:
		return TypeString
	case genspec.TypeNumber:
		return TypeDouble
	case genspec.TypeInteger:
		return TypeInt
	case genspec.TypeBoolean:
		return TypeBoolean
	case genspec.TypeArray:
		elem := TypeAny
		if node.Items != nil && node.Items.Ref != "" {
			elem = m.refName(node.Items.Ref)
		}
		return "List<" + elem + ">"
	default:
		return objectOr(knownObjectName)
	}
}

// ResolveBody returns the type used for request and response bodies: the
// simple name of a referenced schema, else Resolve with no known name.
func (m TypeMapper) ResolveBody(node *genspec.Schema) string {
	if node != nil && node.Ref != "" {
		return m.refName(node.Ref)
	}
	return m.Resolve(node, "")
}

func (m TypeMapper) refName(ref string) string {
	name := genspec.RefName(ref)
	if name == "" {
		return TypeAny
	}
	if m.Components == nil {
		return name
	}
	if _, ok := m.Components.Get(name); ok {
		return name
	}
	if m.Logger != nil {
		m.Logger.Warn("unresolved reference", "ref", ref, "fallback", TypeAny)
	}
	return TypeAny
}

func objectOr(knownObjectName string) string {
	if knownObjectName != "" {
		return knownObjectName
	}
	return TypeAny
}

// DefaultValue returns the Kotlin default literal for a type tag. Every
// generated property carries one so that no constructor argument is
// mandatory.
func DefaultValue(t genspec.SchemaType) string {
	switch t {
	case genspec.TypeString:
		return `""`
	case genspec.TypeNumber:
		return "0.0"
	case genspec.TypeInteger:
		return "0"
	case genspec.TypeBoolean:
		return "false"
	case genspec.TypeArray:
		return "emptyList()"
	default:
		// object, null and untyped nodes
		return "null"
	}
}
