package oasgen

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NamingConvention controls how reflected Go field names without a json tag
// are rendered as schema property keys. Fields with a json tag always use it.
type NamingConvention string

const (
	NamingAsIs   NamingConvention = ""
	NamingCamel  NamingConvention = "camel"
	NamingSnake  NamingConvention = "snake"
	NamingKebab  NamingConvention = "kebab"
	NamingPascal NamingConvention = "pascal"
)

// TagCase is the case transform applied to auto-derived tags.
type TagCase string

const (
	TagCaseNone  TagCase = ""
	TagCaseTitle TagCase = "title"
	TagCaseLower TagCase = "lower"
)

// Dialect selects the target specification dialect. DialectSwagger2 enables
// legacy behaviors such as form-data file parameters (Swagger 2 has no
// file-in-body support).
type Dialect string

const (
	DialectOpenAPI3 Dialect = ""
	DialectSwagger2 Dialect = "swagger2"
)

// DocumentOptions is the global documentation policy. One immutable value is
// passed explicitly through every pipeline stage; there is no ambient state.
type DocumentOptions struct {
	// RoutePrefix is a leading segment (e.g. "api") stripped when computing
	// the bare route used for tag derivation.
	RoutePrefix string
	// VersionPrefix marks version segments ("v" matches "v1", "v2", ...).
	VersionPrefix string

	// AutoTags derives a tag from the bare route when an endpoint does not
	// opt out or override it.
	AutoTags bool
	// TagSegmentIndex selects which /-segment of the bare route becomes the
	// auto tag (0 = first segment).
	TagSegmentIndex int
	TagCase         TagCase
	// StripTagSymbols removes non-alphanumeric characters from derived tags.
	StripTagSymbols bool

	// EnableGetRequestBody keeps request bodies on GET operations instead of
	// converting their fields to query parameters.
	EnableGetRequestBody bool
	// AllowEmptyRequest permits request shapes with no settable fields
	// instead of failing the build.
	AllowEmptyRequest bool
	// FlattenPolymorphic lifts oneOf branches carrying a discriminator
	// mapping into the containing schema.
	FlattenPolymorphic bool
	// RemoveEmptySchemas deletes named component schemas left without
	// properties after pruning.
	RemoveEmptySchemas bool
	// Versioning marks an external versioning add-on as active. It
	// pre-populates a conflicting version-route parameter, so colliding
	// (name, kind) pairs are replaced on insert.
	Versioning bool

	Naming  NamingConvention
	Dialect Dialect
}

// Validate checks the policy once up front so every later stage can trust it.
func (o DocumentOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.TagSegmentIndex, validation.Min(0)),
		validation.Field(&o.TagCase, validation.In(TagCaseNone, TagCaseTitle, TagCaseLower)),
		validation.Field(&o.Naming, validation.In(NamingAsIs, NamingCamel, NamingSnake, NamingKebab, NamingPascal)),
		validation.Field(&o.Dialect, validation.In(DialectOpenAPI3, DialectSwagger2)),
	)
}
