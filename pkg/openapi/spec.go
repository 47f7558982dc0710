// Package openapi builds the OpenAPI 3.1 document describing the catalogue API.
package openapi

import (
	"bytes"
	"encoding/json"
	"maps"
	"net/http"
	"strconv"
)

// Version is the OpenAPI version written to every document.
const Version = "3.1.0"

type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Servers    []Server             `json:"servers,omitempty"`
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

// NewSpec returns an empty document preloaded with the shared error schema
// and responses from NewComponents.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    Version,
		Info:       Info{Title: title, Version: version},
		Paths:      map[string]*PathItem{},
		Components: NewComponents(),
	}
}

func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, Server{URL: url})
}

func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddPaths merges paths into the document. Later entries replace earlier ones.
func (s *Spec) AddPaths(paths map[string]*PathItem) {
	maps.Copy(s.Paths, paths)
}

// MarshalJSON encodes spec as indented JSON. HTML escaping is disabled so
// titles such as "A & B" survive verbatim.
func MarshalJSON(spec *Spec) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServeSpec serves the encoded document. The bytes are never mutated.
func ServeSpec(doc []byte) http.HandlerFunc {
	size := strconv.Itoa(len(doc))
	return func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Content-Type", mediaJSON+"; charset=utf-8")
		h.Set("Content-Length", size)
		w.Write(doc)
	}
}
