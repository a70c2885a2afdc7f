// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Corpus. It lets AI assistants pull ranked document context straight from
// the local library.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
