package spec

import (
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// docOrder points at a node of the raw Swagger 2 tree. The converter keeps
// everything in Go maps, so key order is read back from here. The zero value
// knows no order.
type docOrder struct {
	node *yaml.Node
}

// readV2Tree parses data into a node tree. A numeric "swagger: 2.0" is
// re-emitted as a string, since kin decodes that field into a string.
func readV2Tree(data []byte) ([]byte, docOrder) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return data, docOrder{}
	}
	top := docOrder{node: root.Content[0]}
	if v := top.value("swagger"); v != nil && v.Kind == yaml.ScalarNode && v.Tag != "!!str" {
		v.Tag = "!!str"
		v.Style = yaml.DoubleQuotedStyle
		if out, err := yaml.Marshal(&root); err == nil {
			data = out
		}
	}
	return data, top
}

func (o docOrder) value(key string) *yaml.Node {
	n := o.node
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				return n.Content[i+1]
			}
		}
	case yaml.SequenceNode:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(n.Content) {
			return n.Content[i]
		}
	}
	return nil
}

// at descends through mapping keys or sequence indexes.
func (o docOrder) at(keys ...string) docOrder {
	for _, k := range keys {
		o = docOrder{node: o.value(k)}
	}
	return o
}

func (o docOrder) keys() []string {
	if o.node == nil || o.node.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]string, 0, len(o.node.Content)/2)
	for i := 0; i+1 < len(o.node.Content); i += 2 {
		out = append(out, o.node.Content[i].Value)
	}
	return out
}

// bodySchema returns the schema of an operation's "in: body" parameter.
func (o docOrder) bodySchema() docOrder {
	params := o.at("parameters")
	if params.node == nil || params.node.Kind != yaml.SequenceNode {
		return docOrder{}
	}
	for _, p := range params.node.Content {
		po := docOrder{node: p}
		if in := po.value("in"); in != nil && in.Value == "body" {
			return po.at("schema")
		}
	}
	return docOrder{}
}

// orderedKeys returns the keys of m in document order. Keys the document does
// not list, such as ones the converter adds, follow in sorted order.
func orderedKeys[V any](m map[string]V, o docOrder) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range o.keys() {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
