package dashboard

import (
	"context"

	"github.com/aidosqali/vidtube/internal/video"
	"github.com/google/uuid"
)

// statsStore abstracts the aggregate queries.
type statsStore interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]video.Video, error)
}

// Service answers channel-owner dashboard questions.
type Service struct {
	store statsStore
}

// NewService constructs a dashboard service.
func NewService(store statsStore) *Service {
	return &Service{store: store}
}

// Stats returns the requester's channel aggregates.
func (s *Service) Stats(ctx context.Context, channelID uuid.UUID) (ChannelStats, error) {
	return s.store.ChannelStats(ctx, channelID)
}

// Videos returns all of the requester's uploads, unpublished included.
func (s *Service) Videos(ctx context.Context, channelID uuid.UUID) ([]video.Video, error) {
	return s.store.ChannelVideos(ctx, channelID)
}
