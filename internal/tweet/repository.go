package tweet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

const tweetColumns = `
t.id, t.owner_id, u.username, u.avatar_url, t.content, t.created_at, t.updated_at`

// Repository provides database access for tweets.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a tweet repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new tweet.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, content string) (Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH inserted AS (
	INSERT INTO tweets (owner_id, content) VALUES ($1, $2) RETURNING *
)
SELECT inserted.id, inserted.owner_id, u.username, u.avatar_url,
       inserted.content, inserted.created_at, inserted.updated_at
FROM inserted
JOIN users u ON u.id = inserted.owner_id;`

	tweet, err := scanTweet(r.pool.QueryRow(ctx, query, ownerID, content))
	if err != nil {
		return Tweet{}, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

// ByID fetches a single tweet.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + tweetColumns + ` FROM tweets t JOIN users u ON u.id = t.owner_id WHERE t.id = $1;`
	tweet, err := scanTweet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tweet{}, ErrTweetNotFound
		}
		return Tweet{}, fmt.Errorf("find tweet: %w", err)
	}
	return tweet, nil
}

// ListByOwner lists a user's tweets, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + tweetColumns + `
FROM tweets t
JOIN users u ON u.id = t.owner_id
WHERE t.owner_id = $1
ORDER BY t.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer rows.Close()

	var tweets []Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return tweets, nil
}

// Update changes a tweet's content.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, content string) (Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH updated AS (
	UPDATE tweets SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING *
)
SELECT updated.id, updated.owner_id, u.username, u.avatar_url,
       updated.content, updated.created_at, updated.updated_at
FROM updated
JOIN users u ON u.id = updated.owner_id;`

	tweet, err := scanTweet(r.pool.QueryRow(ctx, query, id, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tweet{}, ErrTweetNotFound
		}
		return Tweet{}, fmt.Errorf("update tweet: %w", err)
	}
	return tweet, nil
}

// Delete removes a tweet.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTweetNotFound
	}
	return nil
}

// DeleteByOwner removes all tweets authored by a user (cleanup path).
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("delete tweets by owner: %w", err)
	}
	return nil
}

func scanTweet(row pgx.Row) (Tweet, error) {
	var t Tweet
	err := row.Scan(&t.ID, &t.OwnerID, &t.Username, &t.Avatar, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
