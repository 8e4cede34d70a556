package oasgen

// Endpoint is the immutable descriptor for one HTTP endpoint, supplied by the
// routing collaborator. The pipeline only reads it; all mutation happens on
// the operation being built.
type Endpoint struct {
	Method string
	// Route is the raw template, possibly carrying routing constraints
	// ("/api/v1/orders/{id:int:min(0)}").
	Route string

	// Version numbering. DeprecatedAt marks the operation deprecated once
	// Version reaches it.
	Version         int
	StartingVersion int
	DeprecatedAt    int

	// Request is an instance of the request shape, or nil when the endpoint
	// takes no input. EmptyRequest is the designated no-body marker.
	Request any
	// Consumes lists request content types; defaults to application/json.
	Consumes []string

	Responses []ResponseMeta

	// Bindings classify request fields away from the body (header, claim,
	// permission, query, body/form override).
	Bindings []Binding
	// Fields carries per-field documentation annotations applied to
	// generated request and response schemas.
	Fields []FieldDoc

	// RequestExamples are labeled example payloads projected onto the final
	// (pruned) body schema.
	RequestExamples []RequestExample

	// IdempotencyHeader, when set (e.g. "Idempotency-Key"), synthesizes a
	// required header parameter regardless of the request shape.
	IdempotencyHeader string

	// TagOverride wins over segment-derived tags; NoAutoTag opts out of tag
	// derivation entirely.
	TagOverride string
	NoAutoTag   bool

	Summary *Summary
}

// EmptyRequest marks an endpoint that deliberately takes no input. Request
// shapes with zero settable fields are otherwise a configuration error.
type EmptyRequest struct{}

// BindKind is the closed set of binding-annotation variants. Classification
// evaluates one rule per kind in fixed precedence order.
type BindKind int

const (
	BindHeader BindKind = iota
	BindClaim
	BindPermission
	BindQuery
	BindBody
	BindForm
)

// Binding attaches one binding annotation to a request field, addressed by Go
// field name.
type Binding struct {
	Field string
	Kind  BindKind
	// Name overrides the wire name (header or claim name).
	Name     string
	Required bool
	// RemoveFromSchema strips the field from the body even when the binding
	// alone would leave it there.
	RemoveFromSchema bool
}

// FieldDoc is a per-field documentation annotation merged into the generated
// request schema by the schema customizer.
type FieldDoc struct {
	Field       string
	Description string
	Example     any
	Default     any
	Deprecated  bool
}

// ResponseMeta declares one response type for a status code. When the same
// status is declared twice, the last declaration wins.
type ResponseMeta struct {
	Status int
	// Type is an instance of the response shape; nil means no body.
	Type any
	// ContentTypes defaults to application/json. Every content type of one
	// status shares a single schema reference.
	ContentTypes []string
	Description  string
	Example      any
	// Headers are user-declared response headers; they win over headers
	// synthesized from response-shape properties.
	Headers []ResponseHeader
}

// ResponseHeader describes one response header.
type ResponseHeader struct {
	Name        string
	Description string
	Example     any
}

// RequestExample is a labeled example payload. Duplicate labels are
// disambiguated with numeric suffixes in encounter order.
type RequestExample struct {
	Label string
	Value any
}

// Summary is the developer-authored documentation object. Everything here is
// optional; missing pieces degrade to fixed defaults.
type Summary struct {
	Summary     string
	Description string

	// Params maps request field names to descriptions. RequestExamples on
	// the endpoint win over these when both document the same field.
	Params map[string]string
	// ParamExamples maps request field names to example values.
	ParamExamples map[string]any

	// ResponseDescriptions overrides the default reason phrase per status.
	ResponseDescriptions map[int]string
	ResponseExamples     map[int]any
	// ResponseFieldDescriptions overrides property descriptions inside a
	// response schema, per status, keyed by field name and resolved through
	// the wire-level naming transform.
	ResponseFieldDescriptions map[int]map[string]string
	// ResponseHeaders are user-declared headers per status.
	ResponseHeaders map[int][]ResponseHeader
}
