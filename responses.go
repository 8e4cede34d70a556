package oasgen

import (
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
)

const defaultContentType = "application/json"

// assembleResponses merges declared response metadata with user-authored
// descriptions, examples, and headers into the status -> response map. For
// each status the last-declared metadata wins; every content type of one
// status shares a single resolved schema reference.
func (b *Builder) assembleResponses(ep *Endpoint) (*openapi3.Responses, error) {
	byStatus := make(map[int]ResponseMeta)
	for _, meta := range ep.Responses {
		byStatus[meta.Status] = meta
	}
	if len(byStatus) == 0 {
		byStatus[http.StatusOK] = ResponseMeta{Status: http.StatusOK}
	}

	statuses := lo.Keys(byStatus)
	sort.Ints(statuses)

	var opts []openapi3.NewResponsesOption
	for _, status := range statuses {
		resp, err := b.assembleResponse(ep, byStatus[status])
		if err != nil {
			return nil, err
		}
		opts = append(opts, openapi3.WithName(strconv.Itoa(status), resp))
	}
	return openapi3.NewResponses(opts...), nil
}

func (b *Builder) assembleResponse(ep *Endpoint, meta ResponseMeta) (*openapi3.Response, error) {
	desc := b.responseDescription(ep, meta)
	resp := &openapi3.Response{Description: &desc}

	if meta.Type == nil {
		b.overlayUserHeaders(resp, ep, meta)
		return resp, nil
	}

	ref, err := b.schemaForValue(meta.Type, ep.Fields)
	if err != nil {
		return nil, err
	}
	b.applyFieldDescriptions(ep, meta.Status, ref)
	if b.opts.FlattenPolymorphic {
		b.flattenPolymorphic(ref, map[*openapi3.Schema]bool{})
	}
	b.fixByteFormat(ref, map[*openapi3.Schema]bool{})

	example := meta.Example
	if example == nil && ep.Summary != nil {
		example = ep.Summary.ResponseExamples[meta.Status]
	}

	contentTypes := meta.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = []string{defaultContentType}
	}
	resp.Content = openapi3.Content{}
	for _, ct := range contentTypes {
		resp.Content[ct] = &openapi3.MediaType{Schema: ref, Example: example}
	}

	resp.Headers = b.synthesizeHeaders(meta.Type, ref)
	b.overlayUserHeaders(resp, ep, meta)
	return resp, nil
}

// responseDescription resolves the status description: declared metadata,
// then the summary override, then the fixed reason-phrase table.
func (b *Builder) responseDescription(ep *Endpoint, meta ResponseMeta) string {
	if meta.Description != "" {
		return meta.Description
	}
	if ep.Summary != nil {
		if d, ok := ep.Summary.ResponseDescriptions[meta.Status]; ok && d != "" {
			return d
		}
	}
	if t := http.StatusText(meta.Status); t != "" {
		return t
	}
	return "Response"
}

// applyFieldDescriptions overlays the user's per-status field descriptions on
// the response schema, with keys resolved through the naming transform so
// they match generated property keys.
func (b *Builder) applyFieldDescriptions(ep *Endpoint, status int, ref *openapi3.SchemaRef) {
	if ep.Summary == nil {
		return
	}
	overrides := ep.Summary.ResponseFieldDescriptions[status]
	if len(overrides) == 0 {
		return
	}
	s := b.resolveSchema(ref)
	if s == nil {
		return
	}
	for field, desc := range overrides {
		key := applyNaming(b.opts.Naming, field)
		if prop, ok := s.Properties[key]; ok {
			if pv := b.resolveSchema(prop); pv != nil {
				pv.Description = desc
			}
		}
	}
}

// synthesizeHeaders builds response headers from response-shape properties
// tagged `header:"Name"`. Schema, example, and description come from the
// property's own documentation.
func (b *Builder) synthesizeHeaders(respType any, ref *openapi3.SchemaRef) openapi3.Headers {
	t := indirectType(reflect.TypeOf(respType))
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	s := b.resolveSchema(ref)
	if s == nil {
		return nil
	}

	var headers openapi3.Headers
	for i := range t.NumField() {
		sf := t.Field(i)
		headerName := strings.Split(sf.Tag.Get("header"), ",")[0]
		if headerName == "" || !sf.IsExported() {
			continue
		}
		prop := s.Properties[wireName(b.opts.Naming, sf)]
		h := &openapi3.Header{Parameter: openapi3.Parameter{}}
		if pv := b.resolveSchema(prop); pv != nil {
			h.Schema = prop
			h.Description = pv.Description
			h.Example = pv.Example
		} else {
			h.Schema = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		}
		if headers == nil {
			headers = openapi3.Headers{}
		}
		headers[headerName] = &openapi3.HeaderRef{Value: h}
	}
	return headers
}

// overlayUserHeaders applies user-declared headers on top of synthesized
// ones; the user wins on name collisions.
func (b *Builder) overlayUserHeaders(resp *openapi3.Response, ep *Endpoint, meta ResponseMeta) {
	declared := meta.Headers
	if ep.Summary != nil {
		declared = append(declared, ep.Summary.ResponseHeaders[meta.Status]...)
	}
	if len(declared) == 0 {
		return
	}
	if resp.Headers == nil {
		resp.Headers = openapi3.Headers{}
	}
	for _, rh := range declared {
		h := &openapi3.Header{Parameter: openapi3.Parameter{
			Description: rh.Description,
			Example:     rh.Example,
			Schema:      openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		}}
		resp.Headers[rh.Name] = &openapi3.HeaderRef{Value: h}
	}
}

// flattenPolymorphic lifts oneOf branches that carry a discriminator mapping
// into the containing schema, dropping the now-redundant union.
func (b *Builder) flattenPolymorphic(ref *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) {
	s := b.resolveSchema(ref)
	if s == nil || seen[s] {
		return
	}
	seen[s] = true

	if len(s.OneOf) > 0 && s.Discriminator != nil && len(s.Discriminator.Mapping) > 0 {
		for _, branch := range s.OneOf {
			bv := b.resolveSchema(branch)
			if bv == nil {
				continue
			}
			if s.Properties == nil {
				s.Properties = openapi3.Schemas{}
			}
			for name, prop := range bv.Properties {
				if _, exists := s.Properties[name]; !exists {
					s.Properties[name] = prop
				}
			}
		}
		s.OneOf = nil
		s.Discriminator = nil
	}

	for _, prop := range s.Properties {
		b.flattenPolymorphic(prop, seen)
	}
	if s.Items != nil {
		b.flattenPolymorphic(s.Items, seen)
	}
	for _, sub := range s.AllOf {
		b.flattenPolymorphic(sub, seen)
	}
}

// fixByteFormat corrects a schema-generator defect: byte-array fields come
// out as string/byte instead of opaque binary.
func (b *Builder) fixByteFormat(ref *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) {
	s := b.resolveSchema(ref)
	if s == nil || seen[s] {
		return
	}
	seen[s] = true

	if s.Type != nil && s.Type.Is(openapi3.TypeString) && s.Format == "byte" {
		s.Format = "binary"
	}
	for _, prop := range s.Properties {
		b.fixByteFormat(prop, seen)
	}
	if s.Items != nil {
		b.fixByteFormat(s.Items, seen)
	}
	for _, sub := range s.AllOf {
		b.fixByteFormat(sub, seen)
	}
	for _, sub := range s.AnyOf {
		b.fixByteFormat(sub, seen)
	}
	for _, sub := range s.OneOf {
		b.fixByteFormat(sub, seen)
	}
	if s.AdditionalProperties.Schema != nil {
		b.fixByteFormat(s.AdditionalProperties.Schema, seen)
	}
}
