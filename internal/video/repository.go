package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

const videoColumns = `
v.id, v.owner_id, u.username, u.avatar_url,
v.title, v.description, v.object_name, v.thumbnail_object,
v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at`

// Repository provides database access for video records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a video repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateParams carries the fields required to persist a new video.
type CreateParams struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	ObjectName      string
	ThumbnailObject string
	DurationSeconds float64
}

// Create inserts a new video record.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Video, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH inserted AS (
	INSERT INTO videos (owner_id, title, description, object_name, thumbnail_object, duration_seconds)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING *
)
SELECT ` + strings.ReplaceAll(videoColumns, "v.", "inserted.") + `
FROM inserted
JOIN users u ON u.id = inserted.owner_id;`

	video, err := scanVideo(r.pool.QueryRow(ctx, query,
		params.OwnerID, params.Title, params.Description,
		params.ObjectName, params.ThumbnailObject, params.DurationSeconds))
	if err != nil {
		return Video{}, fmt.Errorf("create video: %w", err)
	}
	return video, nil
}

// ByID fetches a single video.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (Video, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + videoColumns + ` FROM videos v JOIN users u ON u.id = v.owner_id WHERE v.id = $1;`
	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Video{}, ErrVideoNotFound
		}
		return Video{}, fmt.Errorf("find video: %w", err)
	}
	return video, nil
}

// IncrementViews atomically bumps the view counter and returns the fresh row.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) (Video, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH bumped AS (
	UPDATE videos SET views = views + 1 WHERE id = $1 RETURNING *
)
SELECT ` + strings.ReplaceAll(videoColumns, "v.", "bumped.") + `
FROM bumped
JOIN users u ON u.id = bumped.owner_id;`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Video{}, ErrVideoNotFound
		}
		return Video{}, fmt.Errorf("increment views: %w", err)
	}
	return video, nil
}

// List returns a filtered, sorted page of videos plus the total match count.
func (r *Repository) List(ctx context.Context, filter ListFilter, p pagination.Params) ([]Video, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	where, args := buildWhere(filter)

	listQuery := fmt.Sprintf(`
SELECT %s
FROM videos v
JOIN users u ON u.id = v.owner_id
%s
ORDER BY v.%s %s
OFFSET $%d LIMIT $%d;`,
		videoColumns, where, filter.sortColumn(), filter.sortDirection(), len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, listQuery, append(args, p.Offset(), p.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate videos: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM videos v %s;`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	return videos, total, nil
}

// Update changes title, description, and optionally the thumbnail object.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, description string, thumbnailObject *string) (Video, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
WITH updated AS (
	UPDATE videos
	SET title = $2,
	    description = $3,
	    thumbnail_object = COALESCE($4, thumbnail_object),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING *
)
SELECT ` + strings.ReplaceAll(videoColumns, "v.", "updated.") + `
FROM updated
JOIN users u ON u.id = updated.owner_id;`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id, title, description, thumbnailObject))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Video{}, ErrVideoNotFound
		}
		return Video{}, fmt.Errorf("update video: %w", err)
	}
	return video, nil
}

// Delete removes the video record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// TogglePublish flips the publish flag and returns the new state.
func (r *Repository) TogglePublish(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var published bool
	err := r.pool.QueryRow(ctx,
		`UPDATE videos SET is_published = NOT is_published, updated_at = NOW()
		 WHERE id = $1 RETURNING is_published;`, id).Scan(&published)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrVideoNotFound
		}
		return false, fmt.Errorf("toggle publish: %w", err)
	}
	return published, nil
}

// Engagement returns like count and the viewer's like/subscribe state.
func (r *Repository) Engagement(ctx context.Context, videoID, ownerID uuid.UUID, viewerID *uuid.UUID) (likes int64, isLiked, isSubscribed bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT (SELECT COUNT(*) FROM likes WHERE video_id = $1),
       EXISTS (SELECT 1 FROM likes WHERE video_id = $1 AND liked_by = $3),
       EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = $2 AND subscriber_id = $3);`

	viewer := uuid.Nil
	if viewerID != nil {
		viewer = *viewerID
	}

	if err = r.pool.QueryRow(ctx, query, videoID, ownerID, viewer).Scan(&likes, &isLiked, &isSubscribed); err != nil {
		err = fmt.Errorf("video engagement: %w", err)
	}
	return likes, isLiked, isSubscribed, err
}

func buildWhere(filter ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if !filter.IncludeUnpublished {
		clauses = append(clauses, "v.is_published")
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", n, n))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanVideo(row pgx.Row) (Video, error) {
	var v Video
	err := row.Scan(
		&v.ID, &v.Owner.ID, &v.Owner.Username, &v.Owner.Avatar,
		&v.Title, &v.Description, &v.ObjectName, &v.ThumbnailObject,
		&v.DurationSeconds, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}
