package tweet

import (
	"context"
	"strings"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/google/uuid"
)

// tweetStore abstracts the persistence layer.
type tweetStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, content string) (Tweet, error)
	ByID(ctx context.Context, id uuid.UUID) (Tweet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Tweet, error)
	Update(ctx context.Context, id uuid.UUID, content string) (Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages tweet use cases with ownership enforcement.
type Service struct {
	store tweetStore
}

// NewService constructs a tweet service.
func NewService(store tweetStore) *Service {
	return &Service{store: store}
}

// Create posts a new tweet for the requester.
func (s *Service) Create(ctx context.Context, requester auth.Identity, content string) (Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Tweet{}, apperr.New(apperr.Validation, "content is required")
	}
	return s.store.Create(ctx, requester.ID, content)
}

// ListByUser lists a user's tweets.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Tweet, error) {
	return s.store.ListByOwner(ctx, userID)
}

// Update edits a tweet; only the author may do so, with no admin bypass.
func (s *Service) Update(ctx context.Context, requester auth.Identity, id uuid.UUID, content string) (Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Tweet{}, apperr.New(apperr.Validation, "content is required")
	}

	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return Tweet{}, err
	}
	if found.OwnerID != requester.ID {
		return Tweet{}, ErrNotOwner
	}

	return s.store.Update(ctx, id, content)
}

// Delete removes a tweet; only the author may do so.
func (s *Service) Delete(ctx context.Context, requester auth.Identity, id uuid.UUID) error {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if found.OwnerID != requester.ID {
		return ErrNotOwner
	}

	return s.store.Delete(ctx, id)
}
