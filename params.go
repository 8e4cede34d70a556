package oasgen

import (
	"net/http"
	"net/textproto"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
)

// reservedHeaders may not be documented as header parameters; a field bound
// to one of them is dropped entirely.
var reservedHeaders = []string{"Accept", "Content-Type", "Authorization"}

// classification is the classifier's verdict for one request shape: the
// visible parameters, the wire names to prune from the body, and the
// cross-cutting overrides picked up along the way.
type classification struct {
	params openapi3.Parameters
	// removed lists wire names classified out of the body, in order.
	removed []string
	// bodyOverride is the field whose own schema replaces the whole body
	// (explicit body/form binding), if any.
	bodyOverride *fieldInfo
	// fileFields are upload fields re-added as form-data parameters in the
	// Swagger 2 dialect.
	fileFields []fieldInfo
}

// classifyParameters evaluates every settable field of the request shape
// against the binding rules, first match wins: path, header, required
// claim/permission, query, else body.
func (b *Builder) classifyParameters(ep *Endpoint, ri routeInfo, fields []fieldInfo) classification {
	var cl classification

	for i := range fields {
		f := fields[i]
		bindings := fieldBindings(ep, f.goName)

		if _, ok := findBinding(bindings, BindBody, BindForm); ok {
			if cl.bodyOverride == nil {
				cl.bodyOverride = &fields[i]
			}
			continue
		}

		if pp, ok := matchPathParam(ri, f); ok {
			cl.params = b.upsertParam(cl.params, b.pathParameter(ep, f, pp))
			cl.removed = append(cl.removed, f.wire)
			continue
		}

		if hb, ok := findBinding(bindings, BindHeader); ok {
			name := textproto.CanonicalMIMEHeaderKey(hb.Name)
			if hb.Name == "" {
				name = textproto.CanonicalMIMEHeaderKey(f.wire)
			}
			if lo.Contains(reservedHeaders, name) {
				// Reserved headers are owned by the protocol layer; the
				// field disappears from the contract entirely.
				cl.removed = append(cl.removed, f.wire)
				continue
			}
			cl.params = b.upsertParam(cl.params, b.headerParameter(ep, f, hb, name))
			if hb.Required || hb.RemoveFromSchema {
				cl.removed = append(cl.removed, f.wire)
			}
			continue
		}

		if sb, ok := findBinding(bindings, BindClaim, BindPermission); ok && sb.Required {
			if _, alsoQuery := findBinding(bindings, BindQuery); alsoQuery {
				b.log.WithField("field", f.goName).
					Warn("field has both a required security binding and a query annotation; the security binding wins")
			}
			cl.removed = append(cl.removed, f.wire)
			continue
		}

		_, explicitQuery := findBinding(bindings, BindQuery)
		implicitQuery := strings.EqualFold(ep.Method, http.MethodGet) && !b.opts.EnableGetRequestBody
		if explicitQuery || implicitQuery {
			forced := false
			if qb, ok := findBinding(bindings, BindQuery); ok {
				forced = qb.Required
			}
			cl.params = b.upsertParam(cl.params, b.queryParameter(ep, f, forced))
			cl.removed = append(cl.removed, f.wire)
			continue
		}

		if b.opts.Dialect == DialectSwagger2 && isFileField(f.typ) {
			cl.fileFields = append(cl.fileFields, f)
			cl.removed = append(cl.removed, f.wire)
			continue
		}

		// Rule 5: the field stays in the body untouched.
	}

	return cl
}

func fieldBindings(ep *Endpoint, goName string) []Binding {
	return lo.Filter(ep.Bindings, func(bnd Binding, _ int) bool {
		return strings.EqualFold(bnd.Field, goName)
	})
}

func findBinding(bindings []Binding, kinds ...BindKind) (Binding, bool) {
	return lo.Find(bindings, func(bnd Binding) bool {
		return lo.Contains(kinds, bnd.Kind)
	})
}

func matchPathParam(ri routeInfo, f fieldInfo) (pathParam, bool) {
	return lo.Find(ri.params, func(pp pathParam) bool {
		return strings.EqualFold(pp.name, f.goName) || strings.EqualFold(pp.name, f.wire)
	})
}

// upsertParam appends a parameter. When the external versioning add-on is
// active it pre-populates conflicting version-route parameters, so colliding
// (name, kind) pairs are removed first and the last write wins.
func (b *Builder) upsertParam(params openapi3.Parameters, p *openapi3.Parameter) openapi3.Parameters {
	if b.opts.Versioning {
		params = lo.Reject(params, func(ref *openapi3.ParameterRef, _ int) bool {
			return ref.Value != nil && ref.Value.Name == p.Name && ref.Value.In == p.In
		})
	}
	return append(params, &openapi3.ParameterRef{Value: p})
}

func (b *Builder) pathParameter(ep *Endpoint, f fieldInfo, pp pathParam) *openapi3.Parameter {
	p := openapi3.NewPathParameter(pp.name)
	p.Schema = b.parameterSchema(f, pp.constraint)
	p.Description = paramDescription(ep, f)
	p.Example = paramExample(ep, f)
	return p
}

func (b *Builder) headerParameter(ep *Endpoint, f fieldInfo, bnd Binding, name string) *openapi3.Parameter {
	p := openapi3.NewHeaderParameter(name)
	p.Required = bnd.Required || b.fieldRequired(ep, f)
	p.Schema = b.parameterSchema(f, "")
	p.Description = paramDescription(ep, f)
	p.Example = paramExample(ep, f)
	return p
}

func (b *Builder) queryParameter(ep *Endpoint, f fieldInfo, forced bool) *openapi3.Parameter {
	p := openapi3.NewQueryParameter(f.wire)
	p.Required = forced || b.fieldRequired(ep, f)
	p.Schema = b.parameterSchema(f, "")
	p.Description = paramDescription(ep, f)
	p.Example = paramExample(ep, f)
	return p
}

// formDataParameter re-adds an upload field as a distinct form-data
// parameter; the legacy dialect cannot express files in the body.
func (b *Builder) formDataParameter(ep *Endpoint, f fieldInfo) *openapi3.Parameter {
	p := &openapi3.Parameter{Name: f.wire, In: "formData"}
	p.Required = b.fieldRequired(ep, f)
	fs := openapi3.NewStringSchema()
	fs.Format = "binary"
	p.Schema = openapi3.NewSchemaRef("", fs)
	p.Description = paramDescription(ep, f)
	return p
}

// idempotencyParameter synthesizes the idempotency-key header, independent of
// the request shape.
func (b *Builder) idempotencyParameter(name string) *openapi3.Parameter {
	p := openapi3.NewHeaderParameter(textproto.CanonicalMIMEHeaderKey(name))
	p.Required = true
	p.Schema = openapi3.NewSchemaRef("", openapi3.NewUUIDSchema())
	p.Description = "Unique key for safe request retries."
	return p
}

// fieldRequired decides requiredness when not forced by the caller: required
// unless the field is nullable or carries a constructor-supplied default.
func (b *Builder) fieldRequired(ep *Endpoint, f fieldInfo) bool {
	if f.hasDefault || f.nullable {
		return false
	}
	for _, d := range ep.Fields {
		if strings.EqualFold(d.Field, f.goName) && d.Default != nil {
			return false
		}
	}
	return true
}

// parameterSchema reflects the field type into a schema, falling back to the
// routing-constraint type hint when reflection cannot produce one.
func (b *Builder) parameterSchema(f fieldInfo, constraint string) *openapi3.SchemaRef {
	t := indirectType(f.typ)
	if t == nil || t.Kind() == reflect.Interface {
		return openapi3.NewSchemaRef("", constraintSchema(constraint))
	}
	ref, err := b.schemaForValue(reflect.New(t).Elem().Interface(), nil)
	if err != nil || ref == nil {
		return openapi3.NewSchemaRef("", constraintSchema(constraint))
	}
	return ref
}

// paramDescription resolves the middle precedence tier: a summary-declared
// description wins over nothing; schema-derived text stays on the schema.
func paramDescription(ep *Endpoint, f fieldInfo) string {
	if ep.Summary == nil {
		return ""
	}
	if d, ok := lookupField(ep.Summary.Params, f); ok {
		return d
	}
	return ""
}

// paramExample resolves the highest precedence tier: a value present in the
// first request example wins over a summary-declared example.
func paramExample(ep *Endpoint, f fieldInfo) any {
	if len(ep.RequestExamples) > 0 {
		if m, ok := toFieldMap(ep.RequestExamples[0].Value); ok {
			for k, v := range m {
				if strings.EqualFold(k, f.wire) || strings.EqualFold(k, f.goName) {
					return v
				}
			}
		}
	}
	if ep.Summary == nil {
		return nil
	}
	if ex, ok := lookupField(ep.Summary.ParamExamples, f); ok {
		return ex
	}
	return nil
}

func lookupField[V any](m map[string]V, f fieldInfo) (V, bool) {
	for k, v := range m {
		if strings.EqualFold(k, f.goName) || strings.EqualFold(k, f.wire) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
