package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/board-search/pkg/openapi"
)

func TestSpec_AddOperation(t *testing.T) {
	s := openapi.NewSpec(&openapi.Info{Title: "Test", Version: "1"}, "/api")

	op := &openapi.Operation{Summary: "Get item", Responses: map[int]*openapi.Response{200: {Description: "ok"}}}
	s.AddOperation("GET", "/items/{id}", op)
	s.AddOperation("POST", "/items", op)
	s.AddOperation("GET", "/skipped", nil)

	if len(s.Paths) != 1 {
		t.Fatalf("Paths len = %d, want 1", len(s.Paths))
	}
	if s.Paths["/items/{id}"].Get != op {
		t.Error("GET operation not registered")
	}
	if len(s.Servers) != 1 || s.Servers[0].URL != "/api" {
		t.Errorf("Servers = %v, want /api", s.Servers)
	}
}

func TestMarshalJSON(t *testing.T) {
	s := openapi.NewSpec(&openapi.Info{Title: "Test", Version: "1"}, "")
	s.AddSchema("Item", openapi.Object(map[string]*openapi.Schema{
		"id":   {Type: "string", Format: "uuid"},
		"tags": openapi.ArrayOf(&openapi.Schema{Type: "string"}),
	}, "id"))
	s.AddOperation("GET", "/items", &openapi.Operation{
		Parameters: []*openapi.Parameter{openapi.QueryParam("q", "string", "query", true)},
		Responses:  map[int]*openapi.Response{200: openapi.ResponseJSON("items", "Item")},
	})

	data, err := openapi.MarshalJSON(s)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc["openapi"] != openapi.Version {
		t.Errorf("openapi = %v, want %s", doc["openapi"], openapi.Version)
	}
	if _, ok := doc["servers"]; ok {
		t.Error("servers present for empty server URL")
	}

	paths := doc["paths"].(map[string]any)
	get := paths["/items"].(map[string]any)["get"].(map[string]any)
	resp := get["responses"].(map[string]any)["200"].(map[string]any)
	ref := resp["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	if ref != "#/components/schemas/Item" {
		t.Errorf("$ref = %v, want #/components/schemas/Item", ref)
	}
}

func TestHandler(t *testing.T) {
	w := httptest.NewRecorder()
	openapi.Handler([]byte(`{"openapi":"3.1.0"}`)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}
