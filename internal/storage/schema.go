package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaTimeout = 30 * time.Second

// schemaStatements holds the full DDL, ordered so foreign keys resolve.
// Statements are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,

	`CREATE TABLE IF NOT EXISTS users (
	id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username           TEXT NOT NULL UNIQUE,
	email              TEXT NOT NULL UNIQUE,
	full_name          TEXT NOT NULL,
	avatar_url         TEXT NOT NULL DEFAULT '',
	cover_image_url    TEXT NOT NULL DEFAULT '',
	password_hash      TEXT NOT NULL,
	role               TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	refresh_token_hash TEXT,
	copyright_strikes  INT NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,

	`CREATE TABLE IF NOT EXISTS videos (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id         UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	object_name      TEXT NOT NULL,
	thumbnail_object TEXT NOT NULL DEFAULT '',
	duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
	views            BIGINT NOT NULL DEFAULT 0,
	is_published     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
	`CREATE INDEX IF NOT EXISTS idx_videos_owner ON videos(owner_id);`,
	`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC);`,

	`CREATE TABLE IF NOT EXISTS comments (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	video_id   UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
	`CREATE INDEX IF NOT EXISTS idx_comments_video ON comments(video_id);`,

	`CREATE TABLE IF NOT EXISTS tweets (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
	`CREATE INDEX IF NOT EXISTS idx_tweets_owner ON tweets(owner_id);`,

	`CREATE TABLE IF NOT EXISTS likes (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	liked_by   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	video_id   UUID REFERENCES videos(id) ON DELETE CASCADE,
	comment_id UUID REFERENCES comments(id) ON DELETE CASCADE,
	tweet_id   UUID REFERENCES tweets(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (num_nonnulls(video_id, comment_id, tweet_id) = 1)
);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_video_unique
	ON likes(liked_by, video_id) WHERE video_id IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_comment_unique
	ON likes(liked_by, comment_id) WHERE comment_id IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_tweet_unique
	ON likes(liked_by, tweet_id) WHERE tweet_id IS NOT NULL;`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	subscriber_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	channel_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (subscriber_id, channel_id)
);`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions(channel_id);`,

	`CREATE TABLE IF NOT EXISTS playlists (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,

	`CREATE TABLE IF NOT EXISTS playlist_videos (
	playlist_id UUID NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	video_id    UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	added_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (playlist_id, video_id)
);`,

	`CREATE TABLE IF NOT EXISTS watch_history (
	user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	video_id   UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	watched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, video_id)
);`,
}

// EnsureSchema creates all tables and indexes if they do not yet exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
