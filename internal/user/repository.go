package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// defaultColumns is the projection used for all reads that do not explicitly
// opt in to sensitive fields.
const defaultColumns = `id, username, email, full_name, avatar_url, cover_image_url, role, created_at, updated_at`

// Repository provides database access for user records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a user repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateParams carries the fields required to persist a new account.
type CreateParams struct {
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	PasswordHash  string
}

// Create persists a new user record with lowercase-normalized username/email.
func (r *Repository) Create(ctx context.Context, params CreateParams) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO users (username, email, full_name, avatar_url, cover_image_url, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + defaultColumns + `;`

	row := r.pool.QueryRow(ctx, query,
		strings.ToLower(params.Username),
		strings.ToLower(params.Email),
		params.FullName,
		params.AvatarURL,
		params.CoverImageURL,
		params.PasswordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return User{}, ErrUsernameTaken
			}
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// ByCredential fetches a user by username or email, including the password
// hash for login verification.
func (r *Repository) ByCredential(ctx context.Context, login string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + defaultColumns + `, password_hash
FROM users
WHERE username = $1 OR email = $1;`

	var user User
	var role string
	err := r.pool.QueryRow(ctx, query, strings.ToLower(login)).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &role,
		&user.CreatedAt, &user.UpdatedAt, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user by credential: %w", err)
	}

	user.Role = auth.ParseRole(role)
	return user, nil
}

// CredentialByID fetches a user by id including the password hash, used for
// change-password verification.
func (r *Repository) CredentialByID(ctx context.Context, id uuid.UUID) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + defaultColumns + `, password_hash
FROM users
WHERE id = $1;`

	var user User
	var role string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &role,
		&user.CreatedAt, &user.UpdatedAt, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user credential: %w", err)
	}

	user.Role = auth.ParseRole(role)
	return user, nil
}

// ByID fetches a user with the default (sanitized) projection.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + defaultColumns + ` FROM users WHERE id = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ByUsername fetches a user with the default projection.
func (r *Repository) ByUsername(ctx context.Context, username string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + defaultColumns + ` FROM users WHERE username = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(username)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

// ByIDWithStrikes is the explicit opt-in projection including the strike count.
func (r *Repository) ByIDWithStrikes(ctx context.Context, id uuid.UUID) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + defaultColumns + `, copyright_strikes FROM users WHERE id = $1;`

	var user User
	var role string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &role,
		&user.CreatedAt, &user.UpdatedAt, &user.CopyrightStrikes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user with strikes: %w", err)
	}

	user.Role = auth.ParseRole(role)
	return user, nil
}

// List returns a page of users, newest first, with the total count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + defaultColumns + `
FROM users
ORDER BY created_at DESC
OFFSET $1 LIMIT $2;`

	rows, err := r.pool.Query(ctx, query, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// UpdateAccount changes the mutable profile fields. Username is immutable.
func (r *Repository) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
UPDATE users
SET full_name = $2, email = $3, updated_at = NOW()
WHERE id = $1
RETURNING ` + defaultColumns + `;`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, fullName, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		if _, ok := uniqueViolation(err); ok {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("update account: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1;`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateAvatar stores a new avatar object reference and returns the old one.
func (r *Repository) UpdateAvatar(ctx context.Context, id uuid.UUID, objectName string) (User, string, error) {
	return r.updateImage(ctx, id, "avatar_url", objectName)
}

// UpdateCoverImage stores a new cover object reference and returns the old one.
func (r *Repository) UpdateCoverImage(ctx context.Context, id uuid.UUID, objectName string) (User, string, error) {
	return r.updateImage(ctx, id, "cover_image_url", objectName)
}

func (r *Repository) updateImage(ctx context.Context, id uuid.UUID, column, objectName string) (User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
UPDATE users u
SET %s = $2, updated_at = NOW()
FROM (SELECT %s AS previous FROM users WHERE id = $1) old
WHERE u.id = $1
RETURNING `+defaultColumns+`, old.previous;`, column, column)

	var user User
	var role, previous string
	err := r.pool.QueryRow(ctx, query, id, objectName).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &role,
		&user.CreatedAt, &user.UpdatedAt, &previous,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, "", ErrUserNotFound
		}
		return User{}, "", fmt.Errorf("update %s: %w", column, err)
	}

	user.Role = auth.ParseRole(role)
	return user, previous, nil
}

// IncrementCopyrightStrikes bumps the strike counter and returns the new value.
func (r *Repository) IncrementCopyrightStrikes(ctx context.Context, id uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var strikes int
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET copyright_strikes = copyright_strikes + 1, updated_at = NOW()
		 WHERE id = $1 RETURNING copyright_strikes;`, id).Scan(&strikes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("increment strikes: %w", err)
	}
	return strikes, nil
}

// Delete removes the user record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChannelCounts returns subscriber/subscribed-to totals for a channel and
// whether the viewer subscribes to it.
func (r *Repository) ChannelCounts(ctx context.Context, channelID uuid.UUID, viewerID *uuid.UUID) (subscribers, subscribedTo int64, isSubscribed bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
       (SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1),
       EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2);`

	viewer := uuid.Nil
	if viewerID != nil {
		viewer = *viewerID
	}

	if err = r.pool.QueryRow(ctx, query, channelID, viewer).Scan(&subscribers, &subscribedTo, &isSubscribed); err != nil {
		err = fmt.Errorf("channel counts: %w", err)
	}
	return subscribers, subscribedTo, isSubscribed, err
}

// AddWatchHistory records a watched video, refreshing the timestamp on rewatch.
func (r *Repository) AddWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO watch_history (user_id, video_id)
VALUES ($1, $2)
ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW();`

	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("add watch history: %w", err)
	}
	return nil
}

// WatchHistory lists the user's watched videos, most recent first.
func (r *Repository) WatchHistory(ctx context.Context, userID uuid.UUID) ([]WatchEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT v.id, v.title, v.thumbnail_object, u.username, wh.watched_at
FROM watch_history wh
JOIN videos v ON v.id = wh.video_id
JOIN users u ON u.id = v.owner_id
WHERE wh.user_id = $1
ORDER BY wh.watched_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("watch history: %w", err)
	}
	defer rows.Close()

	var entries []WatchEntry
	for rows.Next() {
		var entry WatchEntry
		if err := rows.Scan(&entry.VideoID, &entry.Title, &entry.Thumbnail, &entry.OwnerUsername, &entry.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watch entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}
	return entries, nil
}

// IdentityByID implements the auth token-service store contract.
func (r *Repository) IdentityByID(ctx context.Context, id uuid.UUID) (auth.Identity, error) {
	user, err := r.ByID(ctx, id)
	if err != nil {
		return auth.Identity{}, err
	}
	return user.Identity(), nil
}

// RefreshTokenHash returns the currently stored rotation value, empty if none.
func (r *Repository) RefreshTokenHash(ctx context.Context, userID uuid.UUID) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var hash string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(refresh_token_hash, '') FROM users WHERE id = $1;`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("load refresh token hash: %w", err)
	}
	return hash, nil
}

// StoreRefreshTokenHash overwrites the single active refresh-token value.
func (r *Repository) StoreRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token_hash = $2, updated_at = NOW() WHERE id = $1;`, userID, hash)
	if err != nil {
		return fmt.Errorf("store refresh token hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearRefreshTokenHash removes the stored rotation value at logout.
func (r *Repository) ClearRefreshTokenHash(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token_hash = NULL, updated_at = NOW() WHERE id = $1;`, userID); err != nil {
		return fmt.Errorf("clear refresh token hash: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	var role string
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Role = auth.ParseRole(role)
	return user, nil
}

func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
