package oasgen_test

import (
	"fmt"
	"net/http"

	oasgen "github.com/oasgen/oasgen"
)

type getOrder struct {
	ID      int    `json:"id"`
	Include string `json:"include"`
}

func ExampleBuilder_Add() {
	doc := oasgen.NewDocument("orders", "Order service", "1.0")
	b, _ := oasgen.NewBuilder(doc, oasgen.DocumentOptions{AutoTags: true})

	_ = b.Add(&oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/orders/{id:int}",
		Request: getOrder{},
	})

	op := doc.Paths.Value("/orders/{id}").Get
	fmt.Println(op.OperationID)
	for _, p := range op.Parameters {
		fmt.Println(p.Value.In, p.Value.Name)
	}
	fmt.Println(op.Tags)
	// Output:
	// getOrdersById
	// path id
	// query include
	// [orders]
}

func ExampleBuilder_Build() {
	doc := oasgen.NewDocument("orders", "Order service", "1.0")
	b, _ := oasgen.NewBuilder(doc, oasgen.DocumentOptions{})

	_ = b.Build([]oasgen.RouteEntry{
		{Method: http.MethodGet, Pattern: "/healthz", Meta: "plain handler"},
		{Method: http.MethodGet, Pattern: "/orders/{id}", Meta: &oasgen.Endpoint{Request: getOrder{}}},
	})

	fmt.Println(doc.Paths.Value("/healthz") == nil)
	fmt.Println(doc.Paths.Value("/orders/{id}").Get != nil)
	// Output:
	// true
	// true
}
