package comment

import (
	"context"
	"strings"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
)

// commentStore abstracts the persistence layer.
type commentStore interface {
	Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (Comment, error)
	ByID(ctx context.Context, id uuid.UUID) (Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, p pagination.Params) ([]Comment, int64, error)
	Update(ctx context.Context, id uuid.UUID, content string) (Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages comment use cases with ownership enforcement.
type Service struct {
	store commentStore
}

// NewService constructs a comment service.
func NewService(store commentStore) *Service {
	return &Service{store: store}
}

// ListPage bundles a comment page with pagination metadata.
type ListPage struct {
	Comments   []Comment       `json:"comments"`
	Pagination pagination.Meta `json:"pagination"`
}

// List returns a page of a video's comments.
func (s *Service) List(ctx context.Context, videoID uuid.UUID, p pagination.Params) (ListPage, error) {
	comments, total, err := s.store.ListByVideo(ctx, videoID, p)
	if err != nil {
		return ListPage{}, err
	}
	return ListPage{Comments: comments, Pagination: pagination.NewMeta(total, p)}, nil
}

// Add creates a comment on a video.
func (s *Service) Add(ctx context.Context, requester auth.Identity, videoID uuid.UUID, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, apperr.New(apperr.Validation, "content is required")
	}
	return s.store.Create(ctx, videoID, requester.ID, content)
}

// Update edits a comment; only the author may do so, with no admin bypass.
func (s *Service) Update(ctx context.Context, requester auth.Identity, id uuid.UUID, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, apperr.New(apperr.Validation, "content is required")
	}

	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	if found.OwnerID != requester.ID {
		return Comment{}, ErrNotOwner
	}

	return s.store.Update(ctx, id, content)
}

// Delete removes a comment; only the author may do so.
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
