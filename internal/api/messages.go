package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go-hireloop-client/internal/models"
)

// MessagePayload is the normalized result of a message endpoint. The backend
// sometimes answers with the single created message and sometimes with the
// whole thread; every response is funneled through normalizeMessages so
// callers never branch on shape.
type MessagePayload struct {
	Messages []models.Message
	// Full is true when Messages is the complete thread rather than a
	// single appended message.
	Full bool
}

// normalizeMessages accepts all observed shapes: a bare array, a bare
// message object, {"message": {...}} and {"messages": [...]}.
func normalizeMessages(data []byte) (*MessagePayload, error) {
	if len(data) == 0 {
		return &MessagePayload{}, nil
	}

	var asList []models.Message
	if err := json.Unmarshal(data, &asList); err == nil {
		return &MessagePayload{Messages: asList, Full: true}, nil
	}

	var wrapped struct {
		Message  *models.Message  `json:"message"`
		Messages []models.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Messages != nil {
			return &MessagePayload{Messages: wrapped.Messages, Full: true}, nil
		}
		if wrapped.Message != nil {
			return &MessagePayload{Messages: []models.Message{*wrapped.Message}}, nil
		}
	}

	var single models.Message
	if err := json.Unmarshal(data, &single); err == nil && single.Content != "" {
		return &MessagePayload{Messages: []models.Message{single}}, nil
	}

	return nil, fmt.Errorf("unrecognized message response shape: %s", truncate(data, 120))
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}

// GetMessages fetches an application's interview thread.
func (c *Client) GetMessages(ctx context.Context, appID string) (*MessagePayload, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/applications/"+appID+"/messages", nil, &raw); err != nil {
		return nil, err
	}
	return normalizeMessages(raw)
}

// SendMessage posts a message to an application thread.
func (c *Client) SendMessage(ctx context.Context, appID, content string) (*MessagePayload, error) {
	body := map[string]string{"content": content}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/applications/"+appID+"/messages", body, &raw); err != nil {
		return nil, err
	}
	return normalizeMessages(raw)
}

// Direct messaging, distinct from application threads.

func (c *Client) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var convs []models.Conversation
	if err := c.do(ctx, http.MethodGet, "/messages/conversations", nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// GetConversation returns the conversation's messages.
func (c *Client) GetConversation(ctx context.Context, id string) (*MessagePayload, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/messages/conversations/"+id, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeMessages(raw)
}

func (c *Client) SendConversationMessage(ctx context.Context, id, content string) (*MessagePayload, error) {
	body := map[string]string{"content": content}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/messages/conversations/"+id, body, &raw); err != nil {
		return nil, err
	}
	return normalizeMessages(raw)
}

func (c *Client) MarkConversationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/messages/conversations/"+id+"/read", nil, nil)
}
