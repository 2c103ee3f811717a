// Package notify implements the notification sink handed to the alert
// dispatcher: a durable PostgreSQL insert plus a Redis event for the
// gateway's SSE forwarding.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"talentmatch/matching-service/internal/model"
	"talentmatch/matching-service/internal/store"
)

// EventNotificationCreated is published on every stored notification so the
// gateway can push it to connected clients.
const EventNotificationCreated = "EVENT_NOTIFICATION_CREATED"

// Sink stores notifications and announces them on the event bus.
type Sink struct {
	notifications *store.NotificationStore
	rdb           *redis.Client
}

// NewSink returns a configured Sink.
func NewSink(notifications *store.NotificationStore, rdb *redis.Client) *Sink {
	return &Sink{notifications: notifications, rdb: rdb}
}

// Create stores the notification and reports whether a row was created.
// The Redis publish is non-fatal: the notification is durable either way and
// the gateway also polls.
func (s *Sink) Create(ctx context.Context, n model.Notification) (bool, error) {
	created, err := s.notifications.Create(ctx, n)
	if err != nil || !created {
		return created, err
	}

	event, _ := json.Marshal(map[string]string{
		"type":        EventNotificationCreated,
		"recipientId": n.RecipientID,
		"title":       n.Title,
		"link":        n.Link,
	})
	if err := s.rdb.Publish(ctx, EventNotificationCreated, event).Err(); err != nil {
		slog.Warn("publish EVENT_NOTIFICATION_CREATED failed", "err", err)
	}

	return true, nil
}
