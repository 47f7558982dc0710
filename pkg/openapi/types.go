package openapi

const mediaJSON = "application/json"

// PathItem holds the operations on one path. The catalogue only reads and
// replaces resources, so GET and PUT are the only methods modelled.
type PathItem struct {
	Get *Operation `json:"get,omitempty"`
	Put *Operation `json:"put,omitempty"`
}

type Operation struct {
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Parameters  []*Parameter      `json:"parameters,omitempty"`
	RequestBody *RequestBody      `json:"requestBody,omitempty"`
	Responses   map[int]*Response `json:"responses"`
}

type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Required    bool    `json:"required,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content"`
}

// Response is either an inline response or a $ref to a component response.
type Response struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema is the subset of JSON Schema used by the catalogue document. Type
// holds a string, or a list such as ["string", "null"] for nullable fields.
type Schema struct {
	Ref         string             `json:"$ref,omitempty"`
	Type        any                `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Example     any                `json:"example,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	Pattern     string             `json:"pattern,omitempty"`

	AdditionalProperties any `json:"additionalProperties,omitempty"`
}

func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// Nullable returns a schema of typ that also admits null.
func Nullable(typ, description string) *Schema {
	return &Schema{Type: []string{typ, "null"}, Description: description}
}

func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// RequestBodyJSON is a JSON body whose schema is the named component.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: jsonContent(SchemaRef(schemaName))}
}

// ResponseJSON is a JSON response whose schema is the named component.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{Description: description, Content: jsonContent(SchemaRef(schemaName))}
}

// PathParam is a required string parameter bound to a {name} path segment.
func PathParam(name, description string) *Parameter {
	return param("path", name, "string", description, true)
}

func QueryParam(name, typ, description string, required bool) *Parameter {
	return param("query", name, typ, description, required)
}

func param(in, name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          in,
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}

func jsonContent(schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{mediaJSON: {Schema: schema}}
}
