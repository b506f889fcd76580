package kotlinemitter

import (
	"strings"

	"github.com/mark3labs/swagger2retrofit/internal/naming"
	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

const serializedNameImport = "com.google.gson.annotations.SerializedName"

// Property is one constructor property of a data class.
type Property struct {
	Name   string // name in the API document
	Schema *genspec.Schema
}

// Declaration is a rendered data class and where it goes.
type Declaration struct {
	Name      string // schema or property name it was derived from
	ClassName string
	Location  Location
	Content   string
}

// RelPath returns the output path of the declaration.
func (d Declaration) RelPath() string {
	return d.Location.FilePath(d.ClassName)
}

// ClassProperties returns the properties declared by node followed by the
// properties of every object-typed composed child, flattened in order.
func ClassProperties(node *genspec.Schema) []Property {
	if node == nil {
		return nil
	}
	var props []Property
	appendAll := func(s *genspec.Schema) {
		if s.Properties == nil {
			return
		}
		for name, ps := range s.Properties.All() {
			props = append(props, Property{Name: name, Schema: ps})
		}
	}
	appendAll(node)
	for _, c := range node.AllOf {
		if c == nil || c.Type != genspec.TypeObject {
			continue
		}
		appendAll(c)
	}
	return props
}

// RenderProperty renders a single constructor property.
//
// snake_case names become lower camel case and keep their wire name in a
// @SerializedName annotation. Object-typed properties refer to a class named
// after the property itself and are the only nullable ones.
func (m TypeMapper) RenderProperty(name string, schema *genspec.Schema) string {
	if schema == nil {
		schema = &genspec.Schema{}
	}
	var b strings.Builder
	field := name
	if naming.IsSnakeCase(name) {
		field = naming.ToLowerCamel(name)
		b.WriteString(`@SerializedName("` + name + `") `)
	}
	b.WriteString("val ")
	b.WriteString(escapeIdentifier(field))
	b.WriteString(": ")
	b.WriteString(m.Resolve(schema, naming.ModelClassName(name)))
	if schema.Type == genspec.TypeObject {
		b.WriteString("?")
	}
	b.WriteString(" = ")
	b.WriteString(DefaultValue(schema.Type))
	return b.String()
}

// Inheritance renders the supertype clause for the referenced composed
// children, or "" when there are none.
func Inheritance(node *genspec.Schema) string {
	inherited := node.Inherited()
	if len(inherited) == 0 {
		return ""
	}
	parents := make([]string, 0, len(inherited))
	for _, c := range inherited {
		parents = append(parents, naming.ToUpperCamel(c.RefName())+"()")
	}
	return " : " + strings.Join(parents, ", ")
}

// RenderClass renders the data class className for node.
func (m TypeMapper) RenderClass(className string, node *genspec.Schema) string {
	if node == nil {
		node = &genspec.Schema{}
	}
	props := ClassProperties(node)
	lines := make([]string, 0, len(props))
	usesAlias := false
	for _, p := range props {
		if naming.IsSnakeCase(p.Name) {
			usesAlias = true
		}
		lines = append(lines, m.RenderProperty(p.Name, p.Schema))
	}

	var b strings.Builder
	if usesAlias {
		b.WriteString("import " + serializedNameImport + "\n\n")
	}
	writeKDoc(&b, "", node.Description)
	b.WriteString("data class " + className + "(")
	if len(lines) > 0 {
		b.WriteString("\n\t")
		b.WriteString(strings.Join(lines, ",\n\t"))
		b.WriteString("\n")
	}
	b.WriteString(")")
	b.WriteString(Inheritance(node))
	b.WriteString("\n")
	return b.String()
}

// EmitSchema renders the declaration for a components schema and, depth
// first, one declaration per object-typed property below it.
func (m TypeMapper) EmitSchema(name string, node *genspec.Schema) []Declaration {
	var out []Declaration
	m.emitSchema(name, node, RootLocation(name), &out)
	return out
}

func (m TypeMapper) emitSchema(name string, node *genspec.Schema, loc Location, out *[]Declaration) {
	className := naming.ModelClassName(name)
	*out = append(*out, Declaration{
		Name:      name,
		ClassName: className,
		Location:  loc,
		Content:   m.RenderClass(className, node),
	})
	for _, p := range ClassProperties(node) {
		if p.Schema == nil || p.Schema.Type != genspec.TypeObject {
			continue
		}
		m.emitSchema(p.Name, p.Schema, loc.Nested(name, p.Name), out)
	}
}

// kdocEscaper keeps comment delimiters in text from closing or nesting the
// block; Kotlin block comments nest.
var kdocEscaper = strings.NewReplacer("*/", `*\/`, "/*", `/\*`)

// writeKDoc writes text as a KDoc block at the given indent. Empty text
// writes nothing.
func writeKDoc(b *strings.Builder, indent, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.WriteString(indent + "/**\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			b.WriteString(indent + " *\n")
			continue
		}
		b.WriteString(indent + " * " + kdocEscaper.Replace(line) + "\n")
	}
	b.WriteString(indent + " */\n")
}
