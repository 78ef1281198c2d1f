package playlist

import (
	"context"
	"strings"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/google/uuid"
)

// playlistStore abstracts the persistence layer.
type playlistStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (Playlist, error)
	ByID(ctx context.Context, id uuid.UUID) (Playlist, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]Playlist, error)
	Videos(ctx context.Context, playlistID uuid.UUID) ([]Entry, error)
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, name, description string) (Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages playlist use cases with ownership enforcement.
type Service struct {
	store playlistStore
}

// NewService constructs a playlist service.
func NewService(store playlistStore) *Service {
	return &Service{store: store}
}

// Create makes a new playlist for the requester.
func (s *Service) Create(ctx context.Context, requester auth.Identity, name, description string) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, apperr.New(apperr.Validation, "name is required")
	}
	return s.store.Create(ctx, requester.ID, name, strings.TrimSpace(description))
}

// Get returns a playlist with its videos.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	videos, err := s.store.Videos(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	return Detail{Playlist: found, Videos: videos}, nil
}

// ListByUser lists a user's playlists.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Playlist, error) {
	return s.store.ByOwner(ctx, userID)
}

// AddVideo adds a video to a playlist the requester owns.
func (s *Service) AddVideo(ctx context.Context, requester auth.Identity, playlistID, videoID uuid.UUID) error {
	if err := s.requireOwner(ctx, requester, playlistID); err != nil {
		return err
	}
	return s.store.AddVideo(ctx, playlistID, videoID)
}

// RemoveVideo removes a video from a playlist the requester owns.
func (s *Service) RemoveVideo(ctx context.Context, requester auth.Identity, playlistID, videoID uuid.UUID) error {
	if err := s.requireOwner(ctx, requester, playlistID); err != nil {
		return err
	}
	return s.store.RemoveVideo(ctx, playlistID, videoID)
}

// Update edits a playlist the requester owns.
func (s *Service) Update(ctx context.Context, requester auth.Identity, id uuid.UUID, name, description string) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, apperr.New(apperr.Validation, "name is required")
	}
	if err := s.requireOwner(ctx, requester, id); err != nil {
		return Playlist{}, err
	}
	return s.store.Update(ctx, id, name, strings.TrimSpace(description))
}

// Delete removes a playlist the requester owns.
func (s *Service) Delete(ctx context.Context, requester auth.Identity, id uuid.UUID) error {
	if err := s.requireOwner(ctx, requester, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) requireOwner(ctx context.Context, requester auth.Identity, playlistID uuid.UUID) error {
	found, err := s.store.ByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if found.OwnerID != requester.ID {
		return ErrNotOwner
	}
	return nil
}
