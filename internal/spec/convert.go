package spec

import (
	"encoding/json"
	"strconv"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/yaml"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// convertV2ToV3 goes through JSON so that kin-openapi's own unmarshalers see
// "$ref" keys. The returned docOrder carries the key order of the source.
func convertV2ToV3(data []byte) (*openapi3.T, docOrder, error) {
	data, order := readV2Tree(data)
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, order, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		return nil, order, err
	}
	// without consumes the converter gives a body parameter no content
	if len(v2.Consumes) == 0 {
		v2.Consumes = []string{JSONMediaType}
	}
	doc, err := openapi2conv.ToV3(&v2)
	return doc, order, err
}

// fromOpenAPI3 converts a kin-openapi document into the Document Model. kin
// stores everything in Go maps; order supplies the source key order, and keys
// it does not know are sorted to keep output stable.
func fromOpenAPI3(doc *openapi3.T, order docOrder) *Document {
	out := &Document{
		OpenAPI:    doc.OpenAPI,
		Paths:      sequencedmap.New[string, *PathItem](),
		Components: Components{Schemas: sequencedmap.New[string, *Schema]()},
	}
	if doc.Info != nil {
		out.Info = Info{Title: doc.Info.Title, Version: doc.Info.Version, Description: doc.Info.Description}
	}

	if doc.Components != nil {
		defs := order.at("definitions")
		for _, name := range orderedKeys(doc.Components.Schemas, defs) {
			out.Components.Schemas.Set(name, toSchema(doc.Components.Schemas[name], true, defs.at(name)))
		}
	}

	paths := order.at("paths")
	for _, p := range orderedKeys(doc.Paths, paths) {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		shared := toParameters(item.Parameters)
		pi := &PathItem{}
		ops := []struct {
			m HttpMethod
			o *openapi3.Operation
		}{
			{GET, item.Get},
			{POST, item.Post},
			{PUT, item.Put},
			{DELETE, item.Delete},
		}
		for _, pair := range ops {
			if pair.o == nil {
				continue
			}
			op := toOperation(pair.o, paths.at(p, strings.ToLower(string(pair.m))))
			op.Parameters = mergeParameters(shared, op.Parameters)
			pi.setOperation(pair.m, op)
		}
		out.Paths.Set(p, pi)
	}
	return out
}

func toOperation(o *openapi3.Operation, oo docOrder) *Operation {
	op := &Operation{
		OperationID: o.OperationID,
		Summary:     o.Summary,
		Description: o.Description,
		Tags:        append([]string(nil), o.Tags...),
		Deprecated:  o.Deprecated,
		Parameters:  toParameters(o.Parameters),
		Responses:   sequencedmap.New[string, *Response](),
	}
	if o.RequestBody != nil && o.RequestBody.Value != nil {
		rb := o.RequestBody.Value
		op.RequestBody = &RequestBody{
			Description: rb.Description,
			Required:    rb.Required,
			Content:     toContent(rb.Content, oo.bodySchema()),
		}
	}
	responses := oo.at("responses")
	for _, code := range orderedKeys(o.Responses, responses) {
		ref := o.Responses[code]
		resp := &Response{Content: sequencedmap.New[string, *MediaType]()}
		if ref != nil && ref.Value != nil {
			if ref.Value.Description != nil {
				resp.Description = *ref.Value.Description
			}
			resp.Content = toContent(ref.Value.Content, responses.at(code, "schema"))
		}
		op.Responses.Set(code, resp)
	}
	return op
}

func toParameters(params openapi3.Parameters) []Parameter {
	out := make([]Parameter, 0, len(params))
	for _, pref := range params {
		if pref == nil || pref.Value == nil {
			continue
		}
		p := pref.Value
		out = append(out, Parameter{
			Name:        p.Name,
			In:          ParameterLocation(p.In),
			Description: p.Description,
			Required:    p.Required,
			Schema:      toSchema(p.Schema, false, docOrder{}),
		})
	}
	return out
}

// toContent converts a content map. A Swagger 2 body carries one schema for
// every media type, so the same source location applies to each entry.
func toContent(content openapi3.Content, so docOrder) *sequencedmap.Map[string, *MediaType] {
	out := sequencedmap.New[string, *MediaType]()
	for _, mime := range orderedKeys(content, docOrder{}) {
		mt := content[mime]
		if mt == nil {
			continue
		}
		out.Set(mime, &MediaType{Schema: toSchema(mt.Schema, false, so)})
	}
	return out
}

// toSchema converts a schema reference. References are kept as-is and not
// followed, which keeps recursive schemas finite. top marks a components
// entry whose value the converter may have left empty. so locates the schema
// in the source document.
func toSchema(ref *openapi3.SchemaRef, top bool, so docOrder) *Schema {
	if ref == nil {
		return nil
	}
	s := &Schema{Properties: sequencedmap.New[string, *Schema]()}
	if ref.Ref != "" && !top {
		s.Ref = ref.Ref
		return s
	}
	v := ref.Value
	if v == nil {
		if top {
			// converted Swagger 2 definitions occasionally arrive without a
			// value; treat them as empty objects
			s.Type = TypeObject
		}
		return s
	}
	s.Type = ParseSchemaType(v.Type)
	s.Description = v.Description
	if v.Items != nil {
		s.Items = toSchema(v.Items, false, so.at("items"))
	}
	props := so.at("properties")
	for _, name := range orderedKeys(v.Properties, props) {
		s.Properties.Set(name, toSchema(v.Properties[name], false, props.at(name)))
	}
	for i, r := range v.AllOf {
		if c := toSchema(r, false, so.at("allOf", strconv.Itoa(i))); c != nil {
			s.AllOf = append(s.AllOf, c)
		}
	}
	return s
}
