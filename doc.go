// Package oasgen synthesizes OpenAPI 3 operation descriptions from endpoint
// metadata: route templates, reflected request/response shapes, developer
// annotations, and a global documentation policy.
//
// Describe each endpoint once:
//
//	ep := &oasgen.Endpoint{
//	    Method:  http.MethodPost,
//	    Route:   "/api/v1/orders/{id:int}",
//	    Version: 1,
//	    Request: CreateOrder{},
//	    Responses: []oasgen.ResponseMeta{
//	        {Status: 201, Type: Order{}},
//	    },
//	}
//
// Then build the document:
//
//	b, _ := oasgen.NewBuilder(doc, opts)
//	err := b.Add(ep)
//
// Each endpoint runs through a fixed pipeline: route normalization and tag
// derivation, response assembly, parameter classification (path, query,
// header, claim, permission), body schema pruning, and request example
// projection. The pipeline is deterministic and purely in-memory; rendering
// the finished document and executing endpoints belong to external
// collaborators.
package oasgen
