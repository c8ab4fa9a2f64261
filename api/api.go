// Package api embeds the OpenAPI description of the HTTP API.
package api

import _ "embed"

// OpenAPI is the raw OpenAPI 3 document served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
