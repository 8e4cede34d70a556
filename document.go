package oasgen

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/sirupsen/logrus"
)

// Builder attaches operation descriptions to one shared document. The host
// build processes endpoints strictly one at a time, so registry writes are
// last-writer-wins without synchronization.
type Builder struct {
	doc     *openapi3.T
	opts    DocumentOptions
	log     logrus.FieldLogger
	schemas openapi3.Schemas
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithLogger replaces the default logger.
func WithLogger(log logrus.FieldLogger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// NewBuilder wires a builder to doc, validating the documentation policy once
// up front. The document's component schemas act as the shared registry.
func NewBuilder(doc *openapi3.T, opts DocumentOptions, bos ...BuilderOption) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document options: %w", err)
	}
	if doc.Paths == nil {
		doc.Paths = &openapi3.Paths{}
	}
	if doc.Components == nil {
		doc.Components = &openapi3.Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = openapi3.Schemas{}
	}
	b := &Builder{
		doc:     doc,
		opts:    opts,
		log:     logrus.StandardLogger(),
		schemas: doc.Components.Schemas,
	}
	for _, bo := range bos {
		bo(b)
	}
	return b, nil
}

// NewDocument returns a basic OpenAPI 3.0.3 document shell.
func NewDocument(title, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// RouteEntry is one route from the routing collaborator. Meta carries the
// endpoint descriptor when this generator manages the route; anything else is
// foreign and passes through untouched.
type RouteEntry struct {
	Method  string
	Pattern string
	Meta    any
}

// Build runs the pipeline over a pre-collected route set. A fatal
// configuration error aborts the whole build; callers must discard the
// document on error so a partial document is never published.
func (b *Builder) Build(entries []RouteEntry) error {
	for _, entry := range entries {
		ep, ok := entry.Meta.(*Endpoint)
		if !ok {
			b.log.WithFields(logrus.Fields{
				"method": entry.Method,
				"route":  entry.Pattern,
			}).Debug("skipping route without endpoint metadata")
			continue
		}
		if ep.Route == "" || ep.Method == "" {
			cp := *ep
			if cp.Route == "" {
				cp.Route = entry.Pattern
			}
			if cp.Method == "" {
				cp.Method = entry.Method
			}
			ep = &cp
		}
		if err := b.Add(ep); err != nil {
			return err
		}
	}
	return nil
}

// Add synthesizes one endpoint's operation description and attaches it to the
// document.
func (b *Builder) Add(ep *Endpoint) error {
	op, path, err := b.buildOperation(ep)
	if err != nil {
		return err
	}
	addPath(b.doc, path, strings.ToUpper(ep.Method), op)
	return nil
}

// addPath registers an operation on the document at the given path and method.
func addPath(doc *openapi3.T, path, method string, op *openapi3.Operation) {
	p := doc.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}

	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPost:
		p.Post = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodDelete:
		p.Delete = op
	case http.MethodHead:
		p.Head = op
	case http.MethodOptions:
		p.Options = op
	}

	doc.Paths.Set(path, p)
}
