package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository computes platform-wide aggregates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SystemStats answers the global totals in a single round trip.
func (r *Repository) SystemStats(ctx context.Context) (SystemStats, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT (SELECT COUNT(*) FROM users),
       (SELECT COUNT(*) FROM videos),
       (SELECT COALESCE(SUM(views), 0) FROM videos),
       (SELECT COUNT(*) FROM likes),
       (SELECT COUNT(*) FROM comments),
       (SELECT COUNT(*) FROM tweets);`

	var stats SystemStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalVideos, &stats.TotalViews,
		&stats.TotalLikes, &stats.TotalComments, &stats.TotalTweets)
	if err != nil {
		return SystemStats{}, fmt.Errorf("system stats: %w", err)
	}
	return stats, nil
}
