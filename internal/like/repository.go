package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository provides database access for like edges.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a like repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ToggleVideoLike flips the requester's like on a video and reports the new state.
func (r *Repository) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "video_id", userID, videoID)
}

// ToggleCommentLike flips the requester's like on a comment.
func (r *Repository) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "comment_id", userID, commentID)
}

// ToggleTweetLike flips the requester's like on a tweet.
func (r *Repository) ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "tweet_id", userID, tweetID)
}

// toggle deletes an existing edge or inserts a fresh one. The partial unique
// index makes insert-after-concurrent-insert fail rather than double-count.
func (r *Repository) toggle(ctx context.Context, column string, userID, targetID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	deleteQuery := fmt.Sprintf(`DELETE FROM likes WHERE liked_by = $1 AND %s = $2;`, column)
	tag, err := r.pool.Exec(ctx, deleteQuery, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO likes (liked_by, %s) VALUES ($1, $2);`, column)
	if _, err := r.pool.Exec(ctx, insertQuery, userID, targetID); err != nil {
		return false, insertError(err)
	}
	return true, nil
}

// insertError maps a dangling target reference onto the not-found sentinel.
func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrTargetNotFound
	}
	return fmt.Errorf("add like: %w", err)
}

// LikedVideos lists videos the user has liked, most recent like first.
func (r *Repository) LikedVideos(ctx context.Context, userID uuid.UUID) ([]LikedVideo, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT v.id, v.title, v.thumbnail_object, u.username, v.views, l.created_at
FROM likes l
JOIN videos v ON v.id = l.video_id
JOIN users u ON u.id = v.owner_id
WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
ORDER BY l.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	defer rows.Close()

	var videos []LikedVideo
	for rows.Next() {
		var v LikedVideo
		if err := rows.Scan(&v.VideoID, &v.Title, &v.Thumbnail, &v.OwnerUsername, &v.Views, &v.LikedAt); err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}
	return videos, nil
}

// DeleteByVideo removes all like edges pointing at a video (cleanup path).
func (r *Repository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE video_id = $1;`, videoID); err != nil {
		return fmt.Errorf("delete likes by video: %w", err)
	}
	return nil
}

// DeleteByUser removes all like edges created by a user (cleanup path).
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE liked_by = $1;`, userID); err != nil {
		return fmt.Errorf("delete likes by user: %w", err)
	}
	return nil
}
