package playlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository provides database access for playlists.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a playlist repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new playlist.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO playlists (owner_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, owner_id, name, description, created_at, updated_at;`

	var p Playlist
	err := r.pool.QueryRow(ctx, query, ownerID, name, description).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Playlist{}, fmt.Errorf("create playlist: %w", err)
	}
	return p, nil
}

// ByID fetches a playlist with its video count.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT p.id, p.owner_id, p.name, p.description,
       (SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id),
       p.created_at, p.updated_at
FROM playlists p
WHERE p.id = $1;`

	var p Playlist
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Playlist{}, ErrPlaylistNotFound
		}
		return Playlist{}, fmt.Errorf("find playlist: %w", err)
	}
	return p, nil
}

// ByOwner lists a user's playlists, newest first.
func (r *Repository) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT p.id, p.owner_id, p.name, p.description,
       (SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id),
       p.created_at, p.updated_at
FROM playlists p
WHERE p.owner_id = $1
ORDER BY p.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// Videos lists the playlist's members in insertion order.
func (r *Repository) Videos(ctx context.Context, playlistID uuid.UUID) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT v.id, v.title, v.thumbnail_object, u.username, v.views, pv.added_at
FROM playlist_videos pv
JOIN videos v ON v.id = pv.video_id
JOIN users u ON u.id = v.owner_id
WHERE pv.playlist_id = $1
ORDER BY pv.added_at ASC;`

	rows, err := r.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.VideoID, &e.Title, &e.Thumbnail, &e.OwnerUsername, &e.Views, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist videos: %w", err)
	}
	return entries, nil
}

// AddVideo inserts a membership row.
func (r *Repository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2);`, playlistID, videoID)
	if err != nil {
		return addVideoError(err)
	}
	return nil
}

// addVideoError classifies membership insert failures: duplicate rows become
// the conflict sentinel, dangling playlist or video references become the
// matching not-found sentinel.
func addVideoError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrVideoAlreadyAdded
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "video") {
				return ErrVideoNotFound
			}
			return ErrPlaylistNotFound
		}
	}
	return fmt.Errorf("add playlist video: %w", err)
}

// RemoveVideo deletes a membership row.
func (r *Repository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2;`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVideoNotInPlaylist
	}
	return nil
}

// Update changes the playlist's name and description.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description string) (Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
UPDATE playlists SET name = $2, description = $3, updated_at = NOW()
WHERE id = $1
RETURNING id, owner_id, name, description, created_at, updated_at;`

	var p Playlist
	err := r.pool.QueryRow(ctx, query, id, name, description).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Playlist{}, ErrPlaylistNotFound
		}
		return Playlist{}, fmt.Errorf("update playlist: %w", err)
	}
	return p, nil
}

// Delete removes a playlist; memberships cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}
