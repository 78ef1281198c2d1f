package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository provides database access for subscription edges.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a subscription repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Toggle flips a subscriber→channel edge and reports the new state.
func (r *Repository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2;`, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("remove subscription: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO subscriptions (subscriber_id, channel_id) VALUES ($1, $2);`, subscriberID, channelID); err != nil {
		return false, fmt.Errorf("add subscription: %w", err)
	}
	return true, nil
}

// Subscribers lists the users subscribed to a channel.
func (r *Repository) Subscribers(ctx context.Context, channelID uuid.UUID) ([]ChannelSummary, error) {
	query := `
SELECT u.id, u.username, u.full_name, u.avatar_url, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.subscriber_id
WHERE s.channel_id = $1
ORDER BY s.created_at DESC;`
	return r.listEdges(ctx, query, channelID)
}

// Channels lists the channels a user subscribes to.
func (r *Repository) Channels(ctx context.Context, subscriberID uuid.UUID) ([]ChannelSummary, error) {
	query := `
SELECT u.id, u.username, u.full_name, u.avatar_url, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.channel_id
WHERE s.subscriber_id = $1
ORDER BY s.created_at DESC;`
	return r.listEdges(ctx, query, subscriberID)
}

// DeleteByUser removes all edges touching a user in either direction.
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 OR channel_id = $1;`, userID); err != nil {
		return fmt.Errorf("delete subscriptions by user: %w", err)
	}
	return nil
}

func (r *Repository) listEdges(ctx context.Context, query string, id uuid.UUID) ([]ChannelSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list subscription edges: %w", err)
	}
	defer rows.Close()

	var summaries []ChannelSummary
	for rows.Next() {
		var s ChannelSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.Avatar, &s.Since); err != nil {
			return nil, fmt.Errorf("scan subscription edge: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription edges: %w", err)
	}
	return summaries, nil
}
