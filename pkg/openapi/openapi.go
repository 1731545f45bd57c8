// Package openapi builds OpenAPI 3.1 documents from route metadata.
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Version is the OpenAPI version emitted by NewSpec.
const Version = "3.1.0"

// Spec is an OpenAPI document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem holds the operations of one path. Only GET is served.
type PathItem struct {
	Get *Operation `json:"get,omitempty"`
}

type Operation struct {
	OperationID string            `json:"operationId,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Parameters  []*Parameter      `json:"parameters,omitempty"`
	Responses   map[int]*Response `json:"responses"`
}

// Parameter is a path or query parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Required    bool    `json:"required,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema is the subset of JSON Schema used by the API documents.
type Schema struct {
	Type       string             `json:"type,omitempty"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Ref        string             `json:"$ref,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// NewSpec creates an empty document served from serverURL.
func NewSpec(info *Info, serverURL string) *Spec {
	s := &Spec{
		OpenAPI:    Version,
		Info:       info,
		Paths:      make(map[string]*PathItem),
		Components: &Components{Schemas: make(map[string]*Schema)},
	}
	if serverURL != "" {
		s.Servers = []*Server{{URL: serverURL}}
	}
	return s
}

// AddOperation registers op for method on path. ServeMux wildcards such as
// {id} are already OpenAPI path templates. Methods other than GET are ignored.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	if op == nil || !strings.EqualFold(method, http.MethodGet) {
		return
	}
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}
	item.Get = op
}

// AddSchema registers a named component schema.
func (s *Spec) AddSchema(name string, schema *Schema) {
	s.Components.Schemas[name] = schema
}

// MarshalJSON encodes the document with two-space indentation.
func MarshalJSON(s *Spec) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Handler serves the encoded document.
func Handler(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}

// SchemaRef references a component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// Object builds an object schema from its properties.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// ArrayOf builds an array schema of items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// ResponseJSON is a JSON response whose body is the named component schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef(schemaName)},
		},
	}
}

// PathParam is a required string path parameter with the given format.
func PathParam(name, format, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string", Format: format},
	}
}

// QueryParam is a query parameter of type typ.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
