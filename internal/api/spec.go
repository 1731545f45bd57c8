package api

import (
	"github.com/JaimeStill/board-search/pkg/openapi"
)

var errorResponses = map[int]*openapi.Response{
	400: openapi.ResponseJSON("Invalid request", "Error"),
	503: openapi.ResponseJSON("Index not built yet", "Error"),
}

func withErrors(ok *openapi.Response, codes ...int) map[int]*openapi.Response {
	out := map[int]*openapi.Response{200: ok}
	for _, c := range codes {
		if r, found := errorResponses[c]; found {
			out[c] = r
		} else {
			out[c] = openapi.ResponseJSON("Error", "Error")
		}
	}
	return out
}

var searchOp = &openapi.Operation{
	OperationID: "search",
	Summary:     "Rank documents against a free-text query",
	Tags:        []string{"Search"},
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("q", "string", "Query text", true),
		openapi.QueryParam("limit", "integer", "Maximum hits, clamped to the configured bound", false),
	},
	Responses: withErrors(openapi.ResponseJSON("Ranked hits", "Results"), 400, 503),
}

var suggestOp = &openapi.Operation{
	OperationID: "suggest",
	Summary:     "Spelling corrections for query words outside the vocabulary",
	Tags:        []string{"Search"},
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("q", "string", "Query text", true),
	},
	Responses: withErrors(openapi.ResponseJSON("Suggested words", "Suggestions")),
}

var documentOp = &openapi.Operation{
	OperationID: "getDocument",
	Summary:     "Fetch an indexed document",
	Tags:        []string{"Documents"},
	Parameters: []*openapi.Parameter{
		openapi.PathParam("id", "uuid", "Document ID"),
	},
	Responses: withErrors(openapi.ResponseJSON("Document", "Document"), 400, 404, 503),
}

var routesOp = &openapi.Operation{
	OperationID: "listRoutes",
	Summary:     "Portal route table",
	Tags:        []string{"Routes"},
	Responses: withErrors(&openapi.Response{
		Description: "Route entries in registration order",
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.ArrayOf(openapi.SchemaRef("RouteInfo"))},
		},
	}),
}

func str(format string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Format: format}
}

var schemas = map[string]*openapi.Schema{
	"Hit": openapi.Object(map[string]*openapi.Schema{
		"id":      str("uuid"),
		"title":   str(""),
		"url":     str("uri"),
		"snippet": str(""),
		"score":   {Type: "number", Format: "double"},
	}, "id", "title", "score"),
	"Results": openapi.Object(map[string]*openapi.Schema{
		"query": str(""),
		"terms": openapi.ArrayOf(str("")),
		"total": {Type: "integer"},
		"hits":  openapi.ArrayOf(openapi.SchemaRef("Hit")),
	}, "query", "terms", "total", "hits"),
	"Suggestions": openapi.Object(map[string]*openapi.Schema{
		"query":       str(""),
		"suggestions": openapi.ArrayOf(str("")),
	}, "query", "suggestions"),
	"Document": openapi.Object(map[string]*openapi.Schema{
		"id":      str("uuid"),
		"key":     str(""),
		"url":     str("uri"),
		"title":   str(""),
		"content": str(""),
	}, "id", "key", "title"),
	"RouteInfo": openapi.Object(map[string]*openapi.Schema{
		"path":   str(""),
		"name":   str(""),
		"params": openapi.ArrayOf(str("")),
	}, "path", "params"),
	"Error": openapi.Object(map[string]*openapi.Schema{
		"error": str(""),
	}, "error"),
}

// Spec builds the OpenAPI document for routes served under Prefix.
func Spec(version string, routes []Route) *openapi.Spec {
	s := openapi.NewSpec(&openapi.Info{
		Title:       "Board Search API",
		Version:     version,
		Description: "Full-text search over the campus bulletin board.",
	}, Prefix)

	for name, schema := range schemas {
		s.AddSchema(name, schema)
	}
	for _, r := range routes {
		s.AddOperation(r.Method, r.Pattern, r.OpenAPI)
	}
	return s
}
