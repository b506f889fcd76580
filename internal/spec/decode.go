package spec

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Decode parses an OpenAPI 3 document (YAML or JSON) into the Document Model.
//
// Decoding happens in two stages: the bytes are parsed into a generic
// yaml.Node tree, which keeps mapping keys in document order, and the tree is
// then mapped onto the model field by field. Unknown keys are ignored and
// missing optional fields keep their zero values. Only structural problems
// (a mapping where a list is expected, and so on) are reported.
func Decode(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse document: %v", err), Cause: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, decodeErr("#", "document is empty")
	}
	d := &decoder{}
	return d.document(deref(root.Content[0]))
}

type decoder struct{}

func (d *decoder) document(n *yaml.Node) (*Document, error) {
	const ptr = "#"
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return nil, err
	}
	doc := &Document{
		Paths:      sequencedmap.New[string, *PathItem](),
		Components: Components{Schemas: sequencedmap.New[string, *Schema]()},
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		p := join(ptr, key)
		var err error
		switch key {
		case "openapi", "swagger":
			doc.OpenAPI, err = scalar(v, p)
		case "info":
			doc.Info, err = d.info(v, p)
		case "paths":
			err = d.paths(v, p, doc.Paths)
		case "components":
			err = d.components(v, p, &doc.Components)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *decoder) info(n *yaml.Node, ptr string) (Info, error) {
	var info Info
	if isNull(n) {
		return info, nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return info, err
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "title":
			info.Title, err = scalar(v, join(ptr, key))
		case "version":
			info.Version, err = scalar(v, join(ptr, key))
		case "description":
			info.Description, err = scalar(v, join(ptr, key))
		}
		return err
	})
	return info, err
}

func (d *decoder) components(n *yaml.Node, ptr string, c *Components) error {
	if isNull(n) {
		return nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return err
	}
	return eachPair(n, func(key string, v *yaml.Node) error {
		if key != "schemas" || isNull(v) {
			return nil
		}
		p := join(ptr, key)
		if err := expectKind(v, yaml.MappingNode, p, "object"); err != nil {
			return err
		}
		return eachPair(v, func(name string, sv *yaml.Node) error {
			s, err := d.schema(sv, join(p, name))
			if err != nil {
				return err
			}
			c.Schemas.Set(name, s)
			return nil
		})
	})
}

func (d *decoder) paths(n *yaml.Node, ptr string, out *sequencedmap.Map[string, *PathItem]) error {
	if isNull(n) {
		return nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return err
	}
	return eachPair(n, func(path string, v *yaml.Node) error {
		item, err := d.pathItem(v, join(ptr, path))
		if err != nil {
			return err
		}
		out.Set(path, item)
		return nil
	})
}

func (d *decoder) pathItem(n *yaml.Node, ptr string) (*PathItem, error) {
	item := &PathItem{}
	if isNull(n) {
		return item, nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return nil, err
	}
	var shared []Parameter
	err := eachPair(n, func(key string, v *yaml.Node) error {
		p := join(ptr, key)
		if key == "parameters" {
			params, err := d.parameters(v, p)
			shared = params
			return err
		}
		m := HttpMethod(strings.ToUpper(key))
		switch m {
		case GET, POST, PUT, DELETE:
			op, err := d.operation(v, p)
			if err != nil {
				return err
			}
			item.setOperation(m, op)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(shared) > 0 {
		for _, m := range Methods {
			if op := item.Operation(m); op != nil {
				op.Parameters = mergeParameters(shared, op.Parameters)
			}
		}
	}
	return item, nil
}

// mergeParameters prepends path-level parameters that the operation does not
// redeclare. Operation-level declarations win.
func mergeParameters(shared, own []Parameter) []Parameter {
	declared := make(map[string]struct{}, len(own))
	for _, p := range own {
		declared[paramKey(p.In, p.Name)] = struct{}{}
	}
	out := make([]Parameter, 0, len(shared)+len(own))
	for _, p := range shared {
		if _, ok := declared[paramKey(p.In, p.Name)]; ok {
			continue
		}
		out = append(out, p)
	}
	return append(out, own...)
}

func paramKey(in ParameterLocation, name string) string {
	return string(in) + ":" + name
}

func (d *decoder) operation(n *yaml.Node, ptr string) (*Operation, error) {
	op := &Operation{Responses: sequencedmap.New[string, *Response]()}
	if isNull(n) {
		return op, nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return nil, err
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		p := join(ptr, key)
		var err error
		switch key {
		case "operationId":
			op.OperationID, err = scalar(v, p)
		case "summary":
			op.Summary, err = scalar(v, p)
		case "description":
			op.Description, err = scalar(v, p)
		case "deprecated":
			op.Deprecated, err = boolean(v, p)
		case "tags":
			op.Tags, err = scalarList(v, p)
		case "parameters":
			op.Parameters, err = d.parameters(v, p)
		case "requestBody":
			op.RequestBody, err = d.requestBody(v, p)
		case "responses":
			err = d.responses(v, p, op.Responses)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (d *decoder) parameters(n *yaml.Node, ptr string) ([]Parameter, error) {
	if isNull(n) {
		return nil, nil
	}
	if err := expectKind(n, yaml.SequenceNode, ptr, "array"); err != nil {
		return nil, err
	}
	out := make([]Parameter, 0, len(n.Content))
	for i, c := range n.Content {
		p, err := d.parameter(deref(c), fmt.Sprintf("%s/%d", ptr, i))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) parameter(n *yaml.Node, ptr string) (Parameter, error) {
	var p Parameter
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return p, err
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		kp := join(ptr, key)
		var err error
		switch key {
		case "name":
			p.Name, err = scalar(v, kp)
		case "in":
			var in string
			in, err = scalar(v, kp)
			p.In = ParameterLocation(in)
		case "description":
			p.Description, err = scalar(v, kp)
		case "required":
			p.Required, err = boolean(v, kp)
		case "schema":
			p.Schema, err = d.schema(v, kp)
		}
		return err
	})
	return p, err
}

func (d *decoder) requestBody(n *yaml.Node, ptr string) (*RequestBody, error) {
	if isNull(n) {
		return nil, nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return nil, err
	}
	rb := &RequestBody{Content: sequencedmap.New[string, *MediaType]()}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		p := join(ptr, key)
		var err error
		switch key {
		case "description":
			rb.Description, err = scalar(v, p)
		case "required":
			rb.Required, err = boolean(v, p)
		case "content":
			err = d.content(v, p, rb.Content)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return rb, nil
}

func (d *decoder) responses(n *yaml.Node, ptr string, out *sequencedmap.Map[string, *Response]) error {
	if isNull(n) {
		return nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return err
	}
	return eachPair(n, func(code string, v *yaml.Node) error {
		p := join(ptr, code)
		resp := &Response{Content: sequencedmap.New[string, *MediaType]()}
		if !isNull(v) {
			if err := expectKind(v, yaml.MappingNode, p, "object"); err != nil {
				return err
			}
			err := eachPair(v, func(key string, rv *yaml.Node) error {
				var err error
				switch key {
				case "description":
					resp.Description, err = scalar(rv, join(p, key))
				case "content":
					err = d.content(rv, join(p, key), resp.Content)
				}
				return err
			})
			if err != nil {
				return err
			}
		}
		out.Set(code, resp)
		return nil
	})
}

func (d *decoder) content(n *yaml.Node, ptr string, out *sequencedmap.Map[string, *MediaType]) error {
	if isNull(n) {
		return nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return err
	}
	return eachPair(n, func(mime string, v *yaml.Node) error {
		p := join(ptr, mime)
		mt := &MediaType{}
		if !isNull(v) {
			if err := expectKind(v, yaml.MappingNode, p, "object"); err != nil {
				return err
			}
			err := eachPair(v, func(key string, mv *yaml.Node) error {
				if key != "schema" {
					return nil
				}
				s, err := d.schema(mv, join(p, key))
				mt.Schema = s
				return err
			})
			if err != nil {
				return err
			}
		}
		out.Set(mime, mt)
		return nil
	})
}

func (d *decoder) schema(n *yaml.Node, ptr string) (*Schema, error) {
	s := &Schema{Properties: sequencedmap.New[string, *Schema]()}
	if isNull(n) {
		return s, nil
	}
	if err := expectKind(n, yaml.MappingNode, ptr, "object"); err != nil {
		return nil, err
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		p := join(ptr, key)
		var err error
		switch key {
		case "type":
			s.Type, err = schemaType(v, p)
		case "description":
			s.Description, err = scalar(v, p)
		case "$ref":
			s.Ref, err = scalar(v, p)
		case "items":
			s.Items, err = d.schema(v, p)
		case "properties":
			if isNull(v) {
				return nil
			}
			if err := expectKind(v, yaml.MappingNode, p, "object"); err != nil {
				return err
			}
			err = eachPair(v, func(name string, pv *yaml.Node) error {
				child, err := d.schema(pv, join(p, name))
				if err != nil {
					return err
				}
				s.Properties.Set(name, child)
				return nil
			})
		case "allOf":
			if isNull(v) {
				return nil
			}
			if err := expectKind(v, yaml.SequenceNode, p, "array"); err != nil {
				return err
			}
			for i, c := range v.Content {
				child, err := d.schema(deref(c), fmt.Sprintf("%s/%d", p, i))
				if err != nil {
					return err
				}
				s.AllOf = append(s.AllOf, child)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// schemaType accepts a single tag or, as OpenAPI 3.1 allows, a list of tags.
// For a list the first non-null tag wins.
func schemaType(n *yaml.Node, ptr string) (SchemaType, error) {
	if n.Kind == yaml.SequenceNode {
		tags, err := scalarList(n, ptr)
		if err != nil {
			return TypeNone, err
		}
		for _, t := range tags {
			if st := ParseSchemaType(t); st != TypeNull {
				return st, nil
			}
		}
		if len(tags) > 0 {
			return TypeNull, nil
		}
		return TypeNone, nil
	}
	tag, err := scalar(n, ptr)
	if err != nil {
		return TypeNone, err
	}
	return ParseSchemaType(tag), nil
}

func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, deref(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func scalar(n *yaml.Node, ptr string) (string, error) {
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", decodeErr(ptr, "expected a scalar value")
	}
	return n.Value, nil
}

func boolean(n *yaml.Node, ptr string) (bool, error) {
	if isNull(n) {
		return false, nil
	}
	var b bool
	if n.Kind != yaml.ScalarNode || n.Decode(&b) != nil {
		return false, decodeErr(ptr, "expected a boolean")
	}
	return b, nil
}

func scalarList(n *yaml.Node, ptr string) ([]string, error) {
	if isNull(n) {
		return nil, nil
	}
	if err := expectKind(n, yaml.SequenceNode, ptr, "array"); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.Content))
	for i, c := range n.Content {
		s, err := scalar(deref(c), fmt.Sprintf("%s/%d", ptr, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func expectKind(n *yaml.Node, kind yaml.Kind, ptr, what string) error {
	if n == nil || n.Kind != kind {
		return decodeErr(ptr, "expected "+what)
	}
	return nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func join(ptr, key string) string {
	return ptr + "/" + pointerEscaper.Replace(key)
}

func decodeErr(ptr, msg string) error {
	return &SpecError{
		Code:        DecodeError,
		Message:     fmt.Sprintf("decode %s: %s", ptr, msg),
		JSONPointer: ptr,
	}
}
