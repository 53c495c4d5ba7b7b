package api

import (
	"context"
	"net/url"
	"strconv"

	"nexus/internal/domain"
)

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) (domain.NotificationList, error) {
	q := url.Values{"unread_only": {strconv.FormatBool(unreadOnly)}}
	var out domain.NotificationList
	err := c.get(ctx, "/notifications", q, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.put(ctx, "/notifications/"+strconv.FormatInt(id, 10)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/read-all", nil, nil)
}
