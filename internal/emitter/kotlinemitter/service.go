package kotlinemitter

import (
	"regexp"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/mark3labs/swagger2retrofit/internal/naming"
	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

var serviceImports = []string{
	"retrofit2.Response",
	"retrofit2.http.*",
}

// DefaultResource groups paths that have no resource segment, such as "/".
const DefaultResource = "api"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PathSegments splits a URL path into its non-empty, non-version segments.
func PathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s == "" || versionSegment.MatchString(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func isPlaceholder(segment string) bool {
	return strings.Contains(segment, "{")
}

// ResourceKey returns the first non-empty, non-version segment of p.
func ResourceKey(p string) string {
	segs := PathSegments(p)
	if len(segs) == 0 {
		return DefaultResource
	}
	return segs[0]
}

// ServiceGroup is the set of paths sharing a resource key, in document order.
type ServiceGroup struct {
	Resource string
	Paths    []string
}

// GroupPaths groups paths by resource key. Groups are ordered by the first
// appearance of their key.
func GroupPaths(paths *sequencedmap.Map[string, *genspec.PathItem]) []ServiceGroup {
	if paths == nil {
		return nil
	}
	var groups []ServiceGroup
	index := make(map[string]int)
	for p := range paths.All() {
		key := ResourceKey(p)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ServiceGroup{Resource: key})
		}
		groups[i].Paths = append(groups[i].Paths, p)
	}
	return groups
}

// ServiceName returns the interface name for a resource key: the singular
// resource with only its first letter upper-cased, suffixed "Service".
// Separators are kept ("order_items" gives "Order_itemService").
func ServiceName(resource string) string {
	return naming.UpperFirst(naming.Singularize(resource)) + "Service"
}

// FunctionName synthesizes a method name from the HTTP method and the path.
// Placeholders contribute nothing. A segment directly followed by a
// placeholder is singularized ("the users element with this id"); every other
// segment is kept as written.
func FunctionName(method genspec.HttpMethod, p string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(method)))
	segs := PathSegments(p)
	for i, seg := range segs {
		switch {
		case isPlaceholder(seg):
		case i < len(segs)-1 && isPlaceholder(segs[i+1]):
			b.WriteString(pascalSegment(naming.Singularize(seg)))
		default:
			b.WriteString(pascalSegment(seg))
		}
	}
	return b.String()
}

// RenderParameter renders one method parameter. Optional parameters are
// nullable and default to null.
func (m TypeMapper) RenderParameter(p genspec.Parameter) string {
	var b strings.Builder
	if p.In != "" {
		b.WriteString("@" + naming.UpperFirst(string(p.In)) + `("` + p.Name + `") `)
	}
	b.WriteString(parameterName(p.Name))
	b.WriteString(": ")
	b.WriteString(m.Resolve(p.Schema, ""))
	if !p.Required {
		b.WriteString("? = null")
	}
	return b.String()
}

// renderBody renders the @Body parameter for a JSON request body, or "".
func (m TypeMapper) renderBody(rb *genspec.RequestBody) string {
	schema := rb.JSONSchema()
	if schema == nil {
		return ""
	}
	s := "@Body body: " + m.ResolveBody(schema)
	if !rb.Required {
		s += "? = null"
	}
	return s
}

// ReturnType returns the result container for the operation's success
// response.
func (m TypeMapper) ReturnType(op *genspec.Operation) string {
	var schema *genspec.Schema
	if _, resp, ok := op.SuccessResponse(); ok {
		schema = resp.JSONSchema()
	}
	return "Response<" + m.ResolveBody(schema) + ">"
}

// RenderCall renders one suspending interface method for op.
func (m TypeMapper) RenderCall(method genspec.HttpMethod, p string, op *genspec.Operation) string {
	var b strings.Builder
	const indent = "    "

	doc := strings.TrimSpace(op.Summary)
	if d := strings.TrimSpace(op.Description); d != "" && d != doc {
		if doc != "" {
			doc += "\n\n"
		}
		doc += d
	}
	var meta []string
	if id := strings.TrimSpace(op.OperationID); id != "" {
		meta = append(meta, "operationId: "+id)
	}
	if len(op.Tags) > 0 {
		meta = append(meta, "tags: "+strings.Join(op.Tags, ", "))
	}
	if len(meta) > 0 {
		if doc != "" {
			doc += "\n\n"
		}
		doc += strings.Join(meta, "\n")
	}
	writeKDoc(&b, indent, doc)
	if op.Deprecated {
		b.WriteString(indent + `@Deprecated("Deprecated by the API")` + "\n")
	}

	params := make([]string, 0, len(op.Parameters)+1)
	for _, param := range op.Parameters {
		params = append(params, m.RenderParameter(param))
	}
	if body := m.renderBody(op.RequestBody); body != "" {
		params = append(params, body)
	}

	b.WriteString(indent + "@" + string(method) + `("` + p + `")` + "\n")
	b.WriteString(indent + "suspend fun " + FunctionName(method, p) + "(")
	b.WriteString(strings.Join(params, ", "))
	b.WriteString("): " + m.ReturnType(op))
	return b.String()
}

// RenderService renders the interface for a group. Paths keep their group
// order; within a path, methods are emitted GET, POST, PUT, DELETE.
func (m TypeMapper) RenderService(name string, group ServiceGroup, paths *sequencedmap.Map[string, *genspec.PathItem]) string {
	var b strings.Builder
	for _, imp := range serviceImports {
		b.WriteString("import " + imp + "\n")
	}
	b.WriteString("\n")
	b.WriteString("interface " + name + " {\n\n")

	seen := make(map[string]string)
	for _, p := range group.Paths {
		item, _ := paths.Get(p)
		for _, method := range genspec.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			fn := FunctionName(method, p)
			if prev, dup := seen[fn]; dup && m.Logger != nil {
				m.Logger.Warn("duplicate method name", "service", name, "method", fn, "path", p, "previous", prev)
			}
			seen[fn] = string(method) + " " + p
			b.WriteString(m.RenderCall(method, p, op))
			b.WriteString("\n\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}
