package oasgen

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, opts DocumentOptions) *Builder {
	t.Helper()
	b, err := NewBuilder(NewDocument("test", "", "1.0"), opts)
	require.NoError(t, err)
	return b
}

func objectSchema(props ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, p := range props {
		s.Properties[p] = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		s.Required = append(s.Required, p)
	}
	return s
}

func jsonBody(ref *openapi3.SchemaRef) *openapi3.RequestBody {
	return &openapi3.RequestBody{Content: openapi3.Content{
		"application/json": &openapi3.MediaType{Schema: ref},
	}}
}

func TestPruneFieldCascadesThroughComposition(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{})

	base := objectSchema("id", "note")
	b.schemas["base"] = openapi3.NewSchemaRef("", base)

	derived := objectSchema("id", "extra")
	derived.AllOf = openapi3.SchemaRefs{
		openapi3.NewSchemaRef("#/components/schemas/base", nil),
	}

	removed := b.pruneField(jsonBody(openapi3.NewSchemaRef("", derived)), "id", nil)

	assert.Equal(t, removedFields{"id"}, removed)
	assert.NotContains(t, derived.Properties, "id")
	assert.NotContains(t, derived.Required, "id")
	assert.NotContains(t, base.Properties, "id")
	assert.NotContains(t, base.Required, "id")
	assert.Contains(t, base.Properties, "note")
	assert.Contains(t, derived.Properties, "extra")
}

func TestPruneFieldIdempotent(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{})
	s := objectSchema("id", "note")
	body := jsonBody(openapi3.NewSchemaRef("", s))

	removed := b.pruneField(body, "id", nil)
	removed = b.pruneField(body, "id", removed)

	assert.Equal(t, removedFields{"id"}, removed)
	assert.Equal(t, []string{"note"}, s.Required)
	assert.Len(t, s.Properties, 1)

	// Removing an absent field is a no-op on the schema but still recorded.
	removed = b.pruneField(body, "ghost", removed)
	assert.Equal(t, removedFields{"id", "ghost"}, removed)
	assert.Len(t, s.Properties, 1)
}

func TestPruneFieldRecordsWithNilBody(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{})
	removed := b.pruneField(nil, "id", nil)
	assert.True(t, removed.contains("ID"))
}

func TestRemovedFieldsContainsIsCaseInsensitive(t *testing.T) {
	r := removedFields{"orderId"}
	assert.True(t, r.contains("ORDERID"))
	assert.False(t, r.contains("order_id"))
}

func TestRemoveEmptyComponents(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{RemoveEmptySchemas: true})

	b.schemas["Empty"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	b.schemas["Full"] = openapi3.NewSchemaRef("", objectSchema("id"))
	b.schemas["Plain"] = openapi3.NewSchemaRef("", openapi3.NewStringSchema())

	b.removeEmptyComponents()

	assert.NotContains(t, b.schemas, "Empty")
	assert.Contains(t, b.schemas, "Full")
	assert.Contains(t, b.schemas, "Plain")
}

func TestRemoveEmptyComponentsAfterPruning(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{RemoveEmptySchemas: true})

	comp := objectSchema("secret")
	b.schemas["Wrapper"] = openapi3.NewSchemaRef("", comp)

	body := jsonBody(openapi3.NewSchemaRef("#/components/schemas/Wrapper", nil))
	b.pruneField(body, "secret", nil)
	b.removeEmptyComponents()

	assert.NotContains(t, b.schemas, "Wrapper")
}

func TestFlattenPolymorphic(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{FlattenPolymorphic: true})

	cat := objectSchema("meow")
	dog := objectSchema("bark")
	b.schemas["Cat"] = openapi3.NewSchemaRef("", cat)
	b.schemas["Dog"] = openapi3.NewSchemaRef("", dog)

	pet := openapi3.NewObjectSchema()
	pet.OneOf = openapi3.SchemaRefs{
		openapi3.NewSchemaRef("#/components/schemas/Cat", nil),
		openapi3.NewSchemaRef("#/components/schemas/Dog", nil),
	}
	pet.Discriminator = &openapi3.Discriminator{
		PropertyName: "kind",
		Mapping:      map[string]string{"cat": "#/components/schemas/Cat", "dog": "#/components/schemas/Dog"},
	}

	ref := openapi3.NewSchemaRef("", pet)
	b.flattenPolymorphic(ref, map[*openapi3.Schema]bool{})

	assert.Empty(t, pet.OneOf)
	assert.Nil(t, pet.Discriminator)
	assert.Contains(t, pet.Properties, "meow")
	assert.Contains(t, pet.Properties, "bark")
}

func TestFlattenPolymorphicNeedsDiscriminator(t *testing.T) {
	b := newTestBuilder(t, DocumentOptions{FlattenPolymorphic: true})

	pet := openapi3.NewObjectSchema()
	pet.OneOf = openapi3.SchemaRefs{
		openapi3.NewSchemaRef("", objectSchema("meow")),
	}

	b.flattenPolymorphic(openapi3.NewSchemaRef("", pet), map[*openapi3.Schema]bool{})

	// Unions without a discriminator mapping stay as declared.
	assert.Len(t, pet.OneOf, 1)
	assert.Empty(t, pet.Properties)
}
