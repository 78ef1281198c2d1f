package like

import (
	"context"

	"github.com/google/uuid"
)

// likeStore abstracts the persistence layer.
type likeStore interface {
	ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (bool, error)
	LikedVideos(ctx context.Context, userID uuid.UUID) ([]LikedVideo, error)
}

// Service manages like toggles. Toggling twice restores the original state.
type Service struct {
	store likeStore
}

// NewService constructs a like service.
func NewService(store likeStore) *Service {
	return &Service{store: store}
}

// ToggleVideo flips the like on a video; returns true when the like now exists.
func (s *Service) ToggleVideo(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	return s.store.ToggleVideoLike(ctx, userID, videoID)
}

// ToggleComment flips the like on a comment.
func (s *Service) ToggleComment(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	return s.store.ToggleCommentLike(ctx, userID, commentID)
}

// ToggleTweet flips the like on a tweet.
func (s *Service) ToggleTweet(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	return s.store.ToggleTweetLike(ctx, userID, tweetID)
}

// LikedVideos lists videos the user has liked.
func (s *Service) LikedVideos(ctx context.Context, userID uuid.UUID) ([]LikedVideo, error) {
	return s.store.LikedVideos(ctx, userID)
}
