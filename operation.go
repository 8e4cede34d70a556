package oasgen

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// buildOperation runs the fixed pipeline for one endpoint and returns the
// finished operation and its canonical path. Each stage is a pure function of
// the operation built so far and the immutable descriptor; only the body/form
// override may replace an earlier decision, and examples attach last.
func (b *Builder) buildOperation(ep *Endpoint) (*openapi3.Operation, string, error) {
	ri := normalizeRoute(b.opts, ep.Route)

	op := &openapi3.Operation{
		OperationID: operationID(ep.Method, ri),
		Tags:        deriveTags(b.opts, ep, ri),
	}
	if ep.Summary != nil {
		op.Summary = ep.Summary.Summary
		op.Description = ep.Summary.Description
	}
	op.Deprecated = ep.DeprecatedAt > 0 && ep.Version >= ep.DeprecatedAt

	responses, err := b.assembleResponses(ep)
	if err != nil {
		return nil, "", err
	}
	op.Responses = responses

	body, fields, err := b.buildRequestBody(ep)
	if err != nil {
		return nil, "", err
	}

	cl := b.classifyParameters(ep, ri, fields)
	sortParameters(cl.params)

	var removed removedFields
	for _, name := range cl.removed {
		removed = b.pruneField(body, name, removed)
	}

	for _, f := range cl.fileFields {
		cl.params = b.upsertParam(cl.params, b.formDataParameter(ep, f))
	}
	if ep.IdempotencyHeader != "" {
		cl.params = b.upsertParam(cl.params, b.idempotencyParameter(ep.IdempotencyHeader))
	}
	op.Parameters = cl.params

	body = b.collapseBody(ep, body, cl.bodyOverride)
	if b.opts.RemoveEmptySchemas {
		b.removeEmptyComponents()
	}

	if cl.bodyOverride != nil {
		body, err = b.overrideBody(ep, cl.bodyOverride)
		if err != nil {
			return nil, "", err
		}
	}

	b.attachExamples(ep, body, cl.bodyOverride, removed)
	if body != nil {
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	return op, ri.path, nil
}

// buildRequestBody reflects the request shape into a body whose content types
// all share one schema reference, and returns the settable fields for
// classification. A shape with zero settable fields is a fatal configuration
// error unless it is the EmptyRequest marker or policy allows it.
func (b *Builder) buildRequestBody(ep *Endpoint) (*openapi3.RequestBody, []fieldInfo, error) {
	if ep.Request == nil {
		return nil, nil, nil
	}
	t := indirectType(reflect.TypeOf(ep.Request))
	if t == reflect.TypeOf(EmptyRequest{}) {
		return nil, nil, nil
	}

	fields := settableFields(b.opts.Naming, t)
	if t.Kind() == reflect.Struct && len(fields) == 0 && !b.opts.AllowEmptyRequest {
		return nil, nil, fmt.Errorf("%s %s: %w", ep.Method, ep.Route, ErrEmptyRequestShape)
	}

	ref, err := b.schemaForValue(ep.Request, ep.Fields)
	if err != nil {
		return nil, nil, err
	}
	b.applySummaryParams(ep, ref, fields)

	body := &openapi3.RequestBody{
		Required: true,
		Content:  openapi3.Content{},
	}
	for _, ct := range requestContentTypes(ep) {
		body.Content[ct] = &openapi3.MediaType{Schema: ref}
	}
	return body, fields, nil
}

// requestContentTypes normalizes declared content types; every content entry
// later shares the same resolved schema reference.
func requestContentTypes(ep *Endpoint) []string {
	if len(ep.Consumes) > 0 {
		return ep.Consumes
	}
	return []string{defaultContentType}
}

// applySummaryParams overlays summary-declared field descriptions on body
// properties. Request examples outrank these, but examples live on the media
// type, not the property schema.
func (b *Builder) applySummaryParams(ep *Endpoint, ref *openapi3.SchemaRef, fields []fieldInfo) {
	if ep.Summary == nil || len(ep.Summary.Params) == 0 {
		return
	}
	s := b.resolveSchema(ref)
	if s == nil {
		return
	}
	for _, f := range fields {
		desc, ok := lookupField(ep.Summary.Params, f)
		if !ok {
			continue
		}
		if prop, exists := s.Properties[f.wire]; exists {
			if pv := b.resolveSchema(prop); pv != nil {
				pv.Description = desc
			}
		}
	}
}

// collapseBody removes the body entirely for GET endpoints without a body
// opt-in, and for bodies pruned down to zero properties (unless the shape is
// list-like).
func (b *Builder) collapseBody(ep *Endpoint, body *openapi3.RequestBody, override *fieldInfo) *openapi3.RequestBody {
	if body == nil {
		return nil
	}
	if strings.EqualFold(ep.Method, http.MethodGet) && !b.opts.EnableGetRequestBody {
		return nil
	}
	if override != nil {
		return body
	}
	if isListLike(reflect.TypeOf(ep.Request)) {
		return body
	}
	for _, mt := range body.Content {
		s := b.resolveSchema(mt.Schema)
		if s != nil && (len(s.Properties) > 0 || len(s.AllOf) > 0) {
			return body
		}
	}
	return nil
}

// overrideBody replaces the whole request body with the bound field's own
// schema, discarding the wrapper object and its named component entry.
func (b *Builder) overrideBody(ep *Endpoint, f *fieldInfo) (*openapi3.RequestBody, error) {
	t := indirectType(f.typ)
	ref, err := b.schemaForValue(reflect.New(t).Elem().Interface(), ep.Fields)
	if err != nil {
		return nil, err
	}

	if wrapper := indirectType(reflect.TypeOf(ep.Request)); wrapper != nil {
		delete(b.schemas, wrapper.Name())
	}

	contentTypes := requestContentTypes(ep)
	bindings := fieldBindings(ep, f.goName)
	if _, isForm := findBinding(bindings, BindForm); isForm && len(ep.Consumes) == 0 {
		contentTypes = []string{"multipart/form-data"}
	}

	body := &openapi3.RequestBody{
		Required: b.fieldRequired(ep, *f),
		Content:  openapi3.Content{},
	}
	for _, ct := range contentTypes {
		body.Content[ct] = &openapi3.MediaType{Schema: ref}
	}
	return body, nil
}

// sortParameters orders the visible parameters path, query, header, form.
// The sort is stable, preserving field declaration order within a kind.
func sortParameters(params openapi3.Parameters) {
	rank := func(in string) int {
		switch in {
		case openapi3.ParameterInPath:
			return 0
		case openapi3.ParameterInQuery:
			return 1
		case openapi3.ParameterInHeader:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(params, func(i, j int) bool {
		return rank(params[i].Value.In) < rank(params[j].Value.In)
	})
}
