package oasgen_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oasgen "github.com/oasgen/oasgen"
)

type itemList struct {
	Items []string `json:"items"`
	Total int      `json:"total" header:"X-Total-Count"`
}

type blob struct {
	Data []byte `json:"data"`
}

func TestResponseContentTypesShareSchemaRef(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: itemList{}, ContentTypes: []string{"application/json", "application/xml"}},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	require.NotNil(t, resp)
	require.Contains(t, resp.Content, "application/json")
	require.Contains(t, resp.Content, "application/xml")
	assert.Same(t, resp.Content["application/json"].Schema, resp.Content["application/xml"].Schema)
}

func TestResponseLastDeclarationWins(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: blob{}, Description: "first"},
			{Status: http.StatusOK, Type: itemList{}, Description: "second"},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	assert.Equal(t, "second", *resp.Description)
	schema := resp.Content["application/json"].Schema.Value
	assert.Contains(t, schema.Properties, "items")
	assert.NotContains(t, schema.Properties, "data")
}

func TestResponseDefaultReasonPhrase(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusNotFound},
			{Status: http.StatusOK, Type: itemList{}},
		},
	})

	responses := doc.Paths.Value("/items").Get.Responses
	assert.Equal(t, "Not Found", *responses.Value("404").Value.Description)
	assert.Equal(t, "OK", *responses.Value("200").Value.Description)
}

func TestResponseSummaryDescriptionOverride(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusNotFound},
		},
		Summary: &oasgen.Summary{
			ResponseDescriptions: map[int]string{http.StatusNotFound: "no such item"},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("404").Value
	assert.Equal(t, "no such item", *resp.Description)
}

func TestResponseHeaderSynthesizedFromProperty(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: itemList{}},
		},
		Fields: []oasgen.FieldDoc{
			{Field: "Total", Description: "total rows", Example: 42},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	require.Contains(t, resp.Headers, "X-Total-Count")
	h := resp.Headers["X-Total-Count"].Value
	require.NotNil(t, h.Schema)
	assert.True(t, h.Schema.Value.Type.Is("integer"))
	assert.Equal(t, "total rows", h.Description)
	assert.Equal(t, 42, h.Example)
}

func TestUserHeadersWinOverSynthesized(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{
				Status: http.StatusOK,
				Type:   itemList{},
				Headers: []oasgen.ResponseHeader{
					{Name: "X-Total-Count", Description: "user override"},
				},
			},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	require.Contains(t, resp.Headers, "X-Total-Count")
	assert.Equal(t, "user override", resp.Headers["X-Total-Count"].Value.Description)
}

func TestSummaryResponseHeaders(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusNoContent},
		},
		Summary: &oasgen.Summary{
			ResponseHeaders: map[int][]oasgen.ResponseHeader{
				http.StatusNoContent: {{Name: "X-Request-Id", Description: "correlation id"}},
			},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("204").Value
	require.Contains(t, resp.Headers, "X-Request-Id")
	assert.Equal(t, "correlation id", resp.Headers["X-Request-Id"].Value.Description)
}

func TestResponseFieldDescriptionOverrides(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: itemList{}},
		},
		Summary: &oasgen.Summary{
			ResponseFieldDescriptions: map[int]map[string]string{
				http.StatusOK: {"items": "all items on this page"},
			},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	schema := resp.Content["application/json"].Schema.Value
	assert.Equal(t, "all items on this page", schema.Properties["items"].Value.Description)
}

func TestByteArrayFormatCorrected(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/blob",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: blob{}},
		},
	})

	resp := doc.Paths.Value("/blob").Get.Responses.Value("200").Value
	data := resp.Content["application/json"].Schema.Value.Properties["data"].Value
	assert.True(t, data.Type.Is("string"))
	assert.Equal(t, "binary", data.Format)
}

func TestResponseExamplePriority(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: itemList{}, Example: "meta"},
		},
		Summary: &oasgen.Summary{
			ResponseExamples: map[int]any{http.StatusOK: "summary"},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	assert.Equal(t, "meta", resp.Content["application/json"].Example)
}

func TestResponseExampleFallsBackToSummary(t *testing.T) {
	doc := buildOne(t, oasgen.DocumentOptions{}, &oasgen.Endpoint{
		Method:  http.MethodGet,
		Route:   "/items",
		Request: oasgen.EmptyRequest{},
		Responses: []oasgen.ResponseMeta{
			{Status: http.StatusOK, Type: itemList{}},
		},
		Summary: &oasgen.Summary{
			ResponseExamples: map[int]any{http.StatusOK: "summary"},
		},
	})

	resp := doc.Paths.Value("/items").Get.Responses.Value("200").Value
	assert.Equal(t, "summary", resp.Content["application/json"].Example)
}
