package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hireloop-client/internal/models"
)

func TestNormalizeMessagesShapes(t *testing.T) {
	t.Run("bare array is the full thread", func(t *testing.T) {
		p, err := normalizeMessages([]byte(`[{"sender":"candidate","content":"hi"},{"sender":"system","content":"welcome"}]`))
		require.NoError(t, err)
		assert.True(t, p.Full)
		require.Len(t, p.Messages, 2)
		assert.Equal(t, models.SenderSystem, p.Messages[1].Sender)
	})

	t.Run("messages wrapper is the full thread", func(t *testing.T) {
		p, err := normalizeMessages([]byte(`{"messages":[{"sender":"company","content":"hello"}]}`))
		require.NoError(t, err)
		assert.True(t, p.Full)
		assert.Len(t, p.Messages, 1)
	})

	t.Run("empty messages wrapper", func(t *testing.T) {
		p, err := normalizeMessages([]byte(`{"messages":[]}`))
		require.NoError(t, err)
		assert.True(t, p.Full)
		assert.Empty(t, p.Messages)
	})

	t.Run("message wrapper is a single append", func(t *testing.T) {
		p, err := normalizeMessages([]byte(`{"message":{"sender":"candidate","content":"hi"}}`))
		require.NoError(t, err)
		assert.False(t, p.Full)
		require.Len(t, p.Messages, 1)
		assert.Equal(t, "hi", p.Messages[0].Content)
	})

	t.Run("bare message object is a single append", func(t *testing.T) {
		p, err := normalizeMessages([]byte(`{"sender":"candidate","content":"hi","createdAt":"2026-01-02T10:00:00Z"}`))
		require.NoError(t, err)
		assert.False(t, p.Full)
		require.Len(t, p.Messages, 1)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := normalizeMessages([]byte(`{"unexpected":true}`))
		assert.Error(t, err)
	})
}
