package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("succeeds with retrieval service", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}}

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("succeeds without library service", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}, Library: nil}

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("fails without retrieval service", func(t *testing.T) {
		ports := &Ports{Library: &mockLibraryService{}}

		server, err := NewServer(ports)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
		assert.Nil(t, server)
	})
}
