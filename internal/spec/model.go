package spec

import (
	"strconv"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Document Model definitions consumed by the emitters. A Document is built
// once by Decode (or Load) and never mutated afterwards.

type HttpMethod string

const (
	GET    HttpMethod = "GET"
	POST   HttpMethod = "POST"
	PUT    HttpMethod = "PUT"
	DELETE HttpMethod = "DELETE"
)

// Methods lists the supported HTTP methods in emission order.
var Methods = []HttpMethod{GET, POST, PUT, DELETE}

// JSONMediaType is the content type whose schema describes request and
// response bodies.
const JSONMediaType = "application/json"

type Document struct {
	OpenAPI    string
	Info       Info
	Paths      *sequencedmap.Map[string, *PathItem]
	Components Components
}

type Info struct {
	Title       string
	Version     string
	Description string
}

type Components struct {
	Schemas *sequencedmap.Map[string, *Schema]
}

type PathItem struct {
	Get    *Operation
	Post   *Operation
	Put    *Operation
	Delete *Operation
}

// Operation returns the operation registered for m, or nil.
func (p *PathItem) Operation(m HttpMethod) *Operation {
	if p == nil {
		return nil
	}
	switch m {
	case GET:
		return p.Get
	case POST:
		return p.Post
	case PUT:
		return p.Put
	case DELETE:
		return p.Delete
	}
	return nil
}

func (p *PathItem) setOperation(m HttpMethod, op *Operation) {
	switch m {
	case GET:
		p.Get = op
	case POST:
		p.Post = op
	case PUT:
		p.Put = op
	case DELETE:
		p.Delete = op
	}
}

type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   *sequencedmap.Map[string, *Response]
}

// SuccessResponse returns the first response, in document order, whose status
// code is an integer in [200, 299].
func (o *Operation) SuccessResponse() (string, *Response, bool) {
	if o == nil || o.Responses == nil {
		return "", nil, false
	}
	for code, resp := range o.Responses.All() {
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			continue
		}
		if n >= 200 && n <= 299 {
			return code, resp, true
		}
	}
	return "", nil, false
}

type ParameterLocation string

const (
	InPath   ParameterLocation = "path"
	InQuery  ParameterLocation = "query"
	InHeader ParameterLocation = "header"
	InCookie ParameterLocation = "cookie"
)

type Parameter struct {
	Name        string
	In          ParameterLocation
	Description string
	Required    bool
	Schema      *Schema
}

type RequestBody struct {
	Description string
	Required    bool
	Content     *sequencedmap.Map[string, *MediaType]
}

// JSONSchema returns the application/json body schema, or nil.
func (r *RequestBody) JSONSchema() *Schema {
	if r == nil {
		return nil
	}
	return jsonSchema(r.Content)
}

type Response struct {
	Description string
	Content     *sequencedmap.Map[string, *MediaType]
}

// JSONSchema returns the application/json body schema, or nil.
func (r *Response) JSONSchema() *Schema {
	if r == nil {
		return nil
	}
	return jsonSchema(r.Content)
}

func jsonSchema(content *sequencedmap.Map[string, *MediaType]) *Schema {
	if content == nil {
		return nil
	}
	mt, ok := content.Get(JSONMediaType)
	if !ok || mt == nil {
		return nil
	}
	return mt.Schema
}

type MediaType struct {
	Schema *Schema
}

type SchemaType string

const (
	TypeNone    SchemaType = ""
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
	TypeNull    SchemaType = "null"
)

// ParseSchemaType maps a type tag onto a SchemaType. Unknown tags map to
// TypeNone.
func ParseSchemaType(s string) SchemaType {
	switch t := SchemaType(strings.TrimSpace(s)); t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject, TypeNull:
		return t
	}
	return TypeNone
}

type Schema struct {
	Type        SchemaType
	Description string
	Properties  *sequencedmap.Map[string, *Schema]
	Items       *Schema
	Ref         string
	AllOf       []*Schema
}

// RefName returns the simple name of the schema reference, or "".
func (s *Schema) RefName() string {
	if s == nil {
		return ""
	}
	return RefName(s.Ref)
}

// Inherited returns the composed children that carry a reference. The
// remaining composed children are mixins whose properties are flattened.
func (s *Schema) Inherited() []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	for _, c := range s.AllOf {
		if c != nil && c.Ref != "" {
			out = append(out, c)
		}
	}
	return out
}

// RefName returns the last segment of a JSON reference such as
// "#/components/schemas/Pet".
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
