package dto

import "encoding/json"

// EndpointDoc documentación de un endpoint tal como la publica /api/docs.
type EndpointDoc struct {
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Description  string          `json:"description"`
	RequiresAuth bool            `json:"requiresAuth"`
	Example      string          `json:"example,omitempty"`
	Response     json.RawMessage `json:"response,omitempty"`
}

// DocsPayload respuesta de GET /api/docs (servicio principal o fábrica).
type DocsPayload struct {
	Version   string          `json:"version"`
	Endpoints []EndpointDoc   `json:"endpoints"`
	Config    json.RawMessage `json:"config,omitempty"`
}
