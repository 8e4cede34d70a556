package oasgen

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
)

// removedFields accumulates the wire names pruned from a body schema. The
// accumulator is threaded through the pipeline by return value and consumed
// by example projection, so examples never show pruned fields.
type removedFields []string

func (r removedFields) contains(name string) bool {
	return lo.ContainsBy(r, func(n string) bool { return strings.EqualFold(n, name) })
}

// pruneField removes one named field from every content type's schema,
// cascading through composed sub-schemas and their required lists. Removing
// an absent field is a no-op, so pruning is idempotent. The removed name is
// recorded even when the body is nil: the field may still appear in user
// examples.
func (b *Builder) pruneField(body *openapi3.RequestBody, name string, removed removedFields) removedFields {
	if !removed.contains(name) {
		removed = append(removed, name)
	}
	if body == nil {
		return removed
	}
	for _, mt := range body.Content {
		b.removeProperty(mt.Schema, name, map[*openapi3.Schema]bool{})
	}
	return removed
}

// removeProperty deletes a property by exact key from a schema node and every
// composed node reachable from it, keeping required lists consistent. Keys
// were produced by the same naming transform as removal names, so matching is
// exact.
func (b *Builder) removeProperty(ref *openapi3.SchemaRef, name string, seen map[*openapi3.Schema]bool) {
	s := b.resolveSchema(ref)
	if s == nil || seen[s] {
		return
	}
	seen[s] = true

	delete(s.Properties, name)
	s.Required = lo.Reject(s.Required, func(req string, _ int) bool { return req == name })

	for _, sub := range s.AllOf {
		b.removeProperty(sub, name, seen)
	}
	for _, sub := range s.AnyOf {
		b.removeProperty(sub, name, seen)
	}
	for _, sub := range s.OneOf {
		b.removeProperty(sub, name, seen)
	}
}

// removeEmptyComponents drops named component schemas left without properties
// after pruning. Removal is by key only; other operations referencing a
// surviving component keep their view intact.
func (b *Builder) removeEmptyComponents() {
	for name, ref := range b.schemas {
		s := ref.Value
		if s == nil {
			continue
		}
		if len(s.Properties) > 0 || len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0 {
			continue
		}
		if s.Items != nil || s.AdditionalProperties.Schema != nil {
			continue
		}
		if s.Type != nil && !s.Type.Is(openapi3.TypeObject) {
			continue
		}
		delete(b.schemas, name)
	}
}
