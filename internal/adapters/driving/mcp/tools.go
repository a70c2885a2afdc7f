package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RetrieveContextInput is the input schema for the retrieve_context tool.
type RetrieveContextInput struct {
	Query string `json:"query" jsonschema:"the query to rank document chunks against"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// RetrieveContextOutput is the output schema for the retrieve_context tool.
type RetrieveContextOutput struct {
	Context string        `json:"context"`
	Chunks  []ChunkOutput `json:"chunks"`
	Count   int           `json:"count"`
}

// ChunkOutput represents a single scored chunk.
type ChunkOutput struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	ChunkIndex   int    `json:"chunk_index"`
	Score        int    `json:"score"`
	Text         string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve ranked document chunks formatted for prompt injection",
	}, s.handleRetrieveContext)
}

// handleRetrieveContext handles the retrieve_context tool invocation.
func (s *Server) handleRetrieveContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveContextInput,
) (*mcp.CallToolResult, RetrieveContextOutput, error) {
	chunks, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, RetrieveContextOutput{}, err
	}

	output := RetrieveContextOutput{
		Context: s.ports.Retrieval.FormatContext(chunks),
		Chunks:  make([]ChunkOutput, len(chunks)),
		Count:   len(chunks),
	}

	for i := range chunks {
		output.Chunks[i] = ChunkOutput{
			DocumentID:   chunks[i].DocumentID,
			DocumentName: chunks[i].DocumentName,
			ChunkIndex:   chunks[i].ChunkIndex,
			Score:        chunks[i].Score,
			Text:         chunks[i].ChunkText,
		}
	}

	return nil, output, nil
}
