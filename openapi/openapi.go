// Package openapi embeds the OpenAPI document for the booking widget API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the document and the running code in sync.
//
//go:embed openapi.yaml
var Document []byte
