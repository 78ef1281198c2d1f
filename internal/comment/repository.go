package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

const commentColumns = `
c.id, c.video_id, c.owner_id, u.username, u.avatar_url, c.content, c.created_at, c.updated_at`

// Repository provides database access for comments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a comment repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new comment on a video.
func (r *Repository) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH inserted AS (
	INSERT INTO comments (video_id, owner_id, content)
	VALUES ($1, $2, $3)
	RETURNING *
)
SELECT inserted.id, inserted.video_id, inserted.owner_id, u.username, u.avatar_url,
       inserted.content, inserted.created_at, inserted.updated_at
FROM inserted
JOIN users u ON u.id = inserted.owner_id;`

	comment, err := scanComment(r.pool.QueryRow(ctx, query, videoID, ownerID, content))
	if err != nil {
		return Comment{}, createError(err)
	}
	return comment, nil
}

// createError maps a dangling video reference onto the not-found sentinel.
func createError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrVideoNotFound
	}
	return fmt.Errorf("create comment: %w", err)
}

// ByID fetches a single comment.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + commentColumns + ` FROM comments c JOIN users u ON u.id = c.owner_id WHERE c.id = $1;`
	comment, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, ErrCommentNotFound
		}
		return Comment{}, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

// ListByVideo returns a page of a video's comments, newest first, with the total.
func (r *Repository) ListByVideo(ctx context.Context, videoID uuid.UUID, p pagination.Params) ([]Comment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + commentColumns + `
FROM comments c
JOIN users u ON u.id = c.owner_id
WHERE c.video_id = $1
ORDER BY c.created_at DESC
OFFSET $2 LIMIT $3;`

	rows, err := r.pool.Query(ctx, query, videoID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE video_id = $1;`, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	return comments, total, nil
}

// Update changes a comment's content.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, content string) (Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH updated AS (
	UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING *
)
SELECT updated.id, updated.video_id, updated.owner_id, u.username, u.avatar_url,
       updated.content, updated.created_at, updated.updated_at
FROM updated
JOIN users u ON u.id = updated.owner_id;`

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, ErrCommentNotFound
		}
		return Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// DeleteByVideo removes all comments on a video (cleanup path).
func (r *Repository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE video_id = $1;`, videoID); err != nil {
		return fmt.Errorf("delete comments by video: %w", err)
	}
	return nil
}

// DeleteByOwner removes all comments authored by a user (cleanup path).
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("delete comments by owner: %w", err)
	}
	return nil
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Username, &c.Avatar, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
