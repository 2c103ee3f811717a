package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentmatch/matching-service/internal/model"
)

// NotificationStore persists notifications for the gateway's delivery
// channels to pick up.
type NotificationStore struct {
	pool *pgxpool.Pool
}

// NewNotificationStore returns a configured NotificationStore.
func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

// Create inserts a notification and reports whether a row was created.
//
// Offer notifications rely on the partial unique index
// uniq_notifications_offer (recipient_id, link) WHERE type = 'ALERT_OFFER':
// a replayed publish event hits the conflict and returns created=false
// instead of producing a duplicate. Digest notifications always insert.
func (s *NotificationStore) Create(ctx context.Context, n model.Notification) (bool, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO notifications (id, recipient_id, type, title, message, link)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (recipient_id, link) WHERE type = 'ALERT_OFFER' DO NOTHING`,
		n.ID, n.RecipientID, n.Type, n.Title, n.Message, n.Link,
	)
	if err != nil {
		return false, fmt.Errorf("create notification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
