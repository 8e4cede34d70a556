package oasgen

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// schemaForValue generates an OpenAPI schema for value. Named component
// schemas land in the builder's shared registry; per-field documentation
// annotations are applied through the generator's customizer hook.
func (b *Builder) schemaForValue(value any, docs []FieldDoc) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(
		openapi3gen.UseAllExportedFields(),
		openapi3gen.SchemaCustomizer(fieldDocCustomizer(docs)),
		openapi3gen.CreateComponentSchemas(openapi3gen.ExportComponentSchemasOptions{
			ExportComponentSchemas: true,
		}),
	)
	ref, err := g.NewSchemaRefForValue(value, b.schemas)
	if err != nil {
		return nil, fmt.Errorf("generating schema for %T: %w", value, err)
	}
	renameProperties(b.opts.Naming, reflect.TypeOf(value), ref, b.schemas, map[*openapi3.Schema]bool{})
	return ref, nil
}

// fieldDocCustomizer merges FieldDoc annotations into generated field schemas,
// matched by Go field name or json name.
func fieldDocCustomizer(docs []FieldDoc) openapi3gen.SchemaCustomizerFn {
	return func(name string, _ reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
		for _, d := range docs {
			if !matchesField(d.Field, name, tag) {
				continue
			}
			if d.Description != "" {
				schema.Description = d.Description
			}
			if d.Example != nil {
				schema.Example = d.Example
			}
			if d.Default != nil {
				schema.Default = d.Default
			}
			if d.Deprecated {
				schema.Deprecated = true
			}
		}
		return nil
	}
}

func matchesField(field, name string, tag reflect.StructTag) bool {
	if strings.EqualFold(field, name) {
		return true
	}
	jsonName := strings.Split(tag.Get("json"), ",")[0]
	return jsonName != "" && jsonName != "-" && strings.EqualFold(field, jsonName)
}

// resolveSchema follows a component reference into the registry. Inline
// schemas resolve to themselves.
func (b *Builder) resolveSchema(ref *openapi3.SchemaRef) *openapi3.Schema {
	return resolveSchema(ref, b.schemas)
}

func resolveSchema(ref *openapi3.SchemaRef, schemas openapi3.Schemas) *openapi3.Schema {
	if ref == nil {
		return nil
	}
	if ref.Value != nil {
		return ref.Value
	}
	if named, ok := schemas[refName(ref.Ref)]; ok && named != nil {
		return named.Value
	}
	return nil
}

func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// renameProperties rewrites property keys of untagged fields to the
// configured naming convention, walking the schema graph alongside the Go
// type so nested shapes stay consistent with removal keys.
func renameProperties(convention NamingConvention, t reflect.Type, ref *openapi3.SchemaRef, schemas openapi3.Schemas, seen map[*openapi3.Schema]bool) {
	if convention == NamingAsIs {
		return
	}
	s := resolveSchema(ref, schemas)
	t = indirectType(t)
	if s == nil || t == nil || seen[s] {
		return
	}
	seen[s] = true

	switch t.Kind() {
	case reflect.Struct:
		renameStructProps(convention, t, s, schemas, seen)
	case reflect.Slice, reflect.Array:
		renameProperties(convention, t.Elem(), s.Items, schemas, seen)
	case reflect.Map:
		if s.AdditionalProperties.Schema != nil {
			renameProperties(convention, t.Elem(), s.AdditionalProperties.Schema, schemas, seen)
		}
	}
}

func renameStructProps(convention NamingConvention, t reflect.Type, s *openapi3.Schema, schemas openapi3.Schemas, seen map[*openapi3.Schema]bool) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous {
			if ft := indirectType(sf.Type); ft.Kind() == reflect.Struct {
				renameStructProps(convention, ft, s, schemas, seen)
			}
			continue
		}
		jsonName := strings.Split(sf.Tag.Get("json"), ",")[0]
		if jsonName == "-" {
			continue
		}
		key := jsonName
		if key == "" {
			key = sf.Name
		}
		want := wireName(convention, sf)
		if prop, ok := s.Properties[key]; ok && want != key {
			s.Properties[want] = prop
			delete(s.Properties, key)
			for j, req := range s.Required {
				if req == key {
					s.Required[j] = want
				}
			}
			key = want
		}
		if prop, ok := s.Properties[key]; ok {
			renameProperties(convention, sf.Type, prop, schemas, seen)
		}
	}
}
