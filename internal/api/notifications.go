package api

import (
	"context"
	"net/http"

	"go-hireloop-client/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifs []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	body := map[string]string{"id": id}
	return c.do(ctx, http.MethodPost, "/notifications/read", body, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil)
}
