// Package http exposes the catalog and the carousel orchestrator as a JSON API.
//
// Routes are described by the embedded openapi.yaml, which is served at
// /openapi.yaml and used to validate request parameters before they reach the
// handlers.
package http
