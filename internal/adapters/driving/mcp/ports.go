package mcp

import (
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval ranks and formats document chunks.
	Retrieval driving.RetrievalService

	// Library manages the document collection.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Library is optional; resources degrade gracefully without it.
	return nil
}
