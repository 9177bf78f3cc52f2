package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Toggle flips the (subscriber, channel) edge. Same delete-first shape
// as the like toggle; the unique constraint is the race backstop.
func (r *SubscriptionRepo) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (added bool, err error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id) VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether the subscriber follows the channel.
func (r *SubscriptionRepo) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM subscriptions
		               WHERE subscriber_id = $1 AND channel_id = $2)`,
		subscriberID, channelID).Scan(&exists)
	return exists, err
}

// ListChannelIDs returns the channels the user subscribes to.
func (r *SubscriptionRepo) ListChannelIDs(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel_id FROM subscriptions WHERE subscriber_id = $1`,
		subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
