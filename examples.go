package oasgen

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mohae/deepcopy"
)

// attachExamples projects the endpoint's labeled request examples onto the
// final body. It runs last, after pruning and flattening, so examples always
// match the published schema. One example becomes the singular media-type
// example; several become named examples with duplicate labels disambiguated
// by numeric suffixes in encounter order.
func (b *Builder) attachExamples(ep *Endpoint, body *openapi3.RequestBody, override *fieldInfo, removed removedFields) {
	if body == nil || len(ep.RequestExamples) == 0 {
		return
	}

	bodyType := indirectType(bodyShapeType(ep, override))
	listLike := bodyType != nil && isListLike(bodyType)

	if len(ep.RequestExamples) == 1 {
		projected := b.projectExample(ep.RequestExamples[0].Value, override, listLike, removed)
		for _, mt := range body.Content {
			mt.Example = projected
		}
		return
	}

	labels := make(map[string]int, len(ep.RequestExamples))
	examples := openapi3.Examples{}
	for _, ex := range ep.RequestExamples {
		label := ex.Label
		if label == "" {
			label = "example"
		}
		labels[label]++
		if n := labels[label]; n > 1 {
			label += " " + strconv.Itoa(n)
		}
		examples[label] = &openapi3.ExampleRef{Value: &openapi3.Example{
			Value: b.projectExample(ex.Value, override, listLike, removed),
		}}
	}
	for _, mt := range body.Content {
		mt.Examples = examples
	}
}

// projectExample clones a user example and shapes it like the final body:
// descend into the override field when the body was flattened, pass
// list-likes through as-is, otherwise serialize to a field map and delete
// every pruned name (case-insensitive).
func (b *Builder) projectExample(value any, override *fieldInfo, listLike bool, removed removedFields) any {
	value = deepcopy.Copy(value)

	if override != nil {
		if m, ok := toFieldMap(value); ok {
			for k, v := range m {
				if strings.EqualFold(k, override.wire) || strings.EqualFold(k, override.goName) {
					value = v
					break
				}
			}
		}
	}

	if listLike {
		return value
	}

	m, ok := toFieldMap(value)
	if !ok {
		return value
	}
	for k := range m {
		if removed.contains(k) {
			delete(m, k)
		}
	}
	return m
}

// toFieldMap serializes a value to its wire-level field map. The JSON
// round-trip mirrors how the payload would appear on the wire.
func toFieldMap(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return m, true
}

// bodyShapeType is the effective body type: the override field's type when
// the body was flattened, else the request shape itself.
func bodyShapeType(ep *Endpoint, override *fieldInfo) reflect.Type {
	if override != nil {
		return override.typ
	}
	if ep.Request == nil {
		return nil
	}
	return reflect.TypeOf(ep.Request)
}
