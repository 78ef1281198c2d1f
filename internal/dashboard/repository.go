package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/aidosqali/vidtube/internal/video"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository computes channel-owner aggregates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a dashboard repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ChannelStats answers the cross-entity totals for one channel in two queries:
// a grouped scan of the owner's videos, and a single pass over likes joined
// against the three possible target types.
func (r *Repository) ChannelStats(ctx context.Context, channelID uuid.UUID) (ChannelStats, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var stats ChannelStats

	baseQuery := `
SELECT (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
       (SELECT COUNT(*) FROM videos WHERE owner_id = $1),
       (SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1);`

	if err := r.pool.QueryRow(ctx, baseQuery, channelID).Scan(
		&stats.TotalSubscribers, &stats.TotalVideos, &stats.TotalViews); err != nil {
		return ChannelStats{}, fmt.Errorf("channel base stats: %w", err)
	}

	likesQuery := `
SELECT COUNT(*)
FROM likes l
LEFT JOIN videos v ON v.id = l.video_id
LEFT JOIN tweets t ON t.id = l.tweet_id
LEFT JOIN comments c ON c.id = l.comment_id
WHERE v.owner_id = $1 OR t.owner_id = $1 OR c.owner_id = $1;`

	if err := r.pool.QueryRow(ctx, likesQuery, channelID).Scan(&stats.TotalLikes); err != nil {
		return ChannelStats{}, fmt.Errorf("channel like count: %w", err)
	}

	return stats, nil
}

// ChannelVideos lists all of the owner's videos, unpublished included,
// newest first.
func (r *Repository) ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]video.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT v.id, v.owner_id, u.username, u.avatar_url,
       v.title, v.description, v.object_name, v.thumbnail_object,
       v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at
FROM videos v
JOIN users u ON u.id = v.owner_id
WHERE v.owner_id = $1
ORDER BY v.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel videos: %w", err)
	}
	defer rows.Close()

	var videos []video.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}
	return videos, nil
}

func scanVideo(row pgx.Row) (video.Video, error) {
	var v video.Video
	err := row.Scan(
		&v.ID, &v.Owner.ID, &v.Owner.Username, &v.Owner.Avatar,
		&v.Title, &v.Description, &v.ObjectName, &v.ThumbnailObject,
		&v.DurationSeconds, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}
