package video

import (
	"context"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
)

// videoStore abstracts the persistence layer.
type videoStore interface {
	Create(ctx context.Context, params CreateParams) (Video, error)
	ByID(ctx context.Context, id uuid.UUID) (Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (Video, error)
	List(ctx context.Context, filter ListFilter, p pagination.Params) ([]Video, int64, error)
	Update(ctx context.Context, id uuid.UUID, title, description string, thumbnailObject *string) (Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TogglePublish(ctx context.Context, id uuid.UUID) (bool, error)
	Engagement(ctx context.Context, videoID, ownerID uuid.UUID, viewerID *uuid.UUID) (int64, bool, bool, error)
}

// mediaStore uploads and removes video/thumbnail binaries.
type mediaStore interface {
	Upload(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// likeCleaner removes like edges when a video goes away.
type likeCleaner interface {
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
}

// commentCleaner removes comments when a video goes away.
type commentCleaner interface {
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
}

// historyAppender records playback into the viewer's watch history.
type historyAppender interface {
	AddWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

// Service manages the video lifecycle.
type Service struct {
	store    videoStore
	media    mediaStore
	likes    likeCleaner
	comments commentCleaner
	history  historyAppender
}

// NewService constructs a video service.
func NewService(store videoStore, media mediaStore, likes likeCleaner, comments commentCleaner, history historyAppender) *Service {
	return &Service{store: store, media: media, likes: likes, comments: comments, history: history}
}

// PublishInput carries the upload form for a new video.
type PublishInput struct {
	Title       string
	Description string
	Duration    string
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

// Publish uploads the media objects and creates the video record.
func (s *Service) Publish(ctx context.Context, owner auth.Identity, input PublishInput) (Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	switch {
	case title == "" || description == "":
		return Video{}, apperr.New(apperr.Validation, "title and description are required")
	case input.VideoFile == nil:
		return Video{}, apperr.New(apperr.Validation, "video file is required")
	case input.Thumbnail == nil:
		return Video{}, apperr.New(apperr.Validation, "thumbnail image is required")
	}

	objectName, err := s.media.Upload(ctx, "videos", input.VideoFile)
	if err != nil {
		return Video{}, err
	}

	thumbnailObject, err := s.media.Upload(ctx, "thumbnails", input.Thumbnail)
	if err != nil {
		// The video object is already stored; remove it rather than orphan it.
		if rmErr := s.media.Remove(ctx, objectName); rmErr != nil {
			log.Printf("remove orphaned video object %q: %v", objectName, rmErr)
		}
		return Video{}, err
	}

	duration, _ := strconv.ParseFloat(input.Duration, 64)

	created, err := s.store.Create(ctx, CreateParams{
		OwnerID:         owner.ID,
		Title:           title,
		Description:     description,
		ObjectName:      objectName,
		ThumbnailObject: thumbnailObject,
		DurationSeconds: duration,
	})
	if err != nil {
		if rmErr := s.media.Remove(ctx, objectName); rmErr != nil {
			log.Printf("remove orphaned video object %q: %v", objectName, rmErr)
		}
		if rmErr := s.media.Remove(ctx, thumbnailObject); rmErr != nil {
			log.Printf("remove orphaned thumbnail object %q: %v", thumbnailObject, rmErr)
		}
		return Video{}, err
	}

	return created, nil
}

// Get fetches a video for playback: bumps the view counter, loads engagement
// data, and appends to the viewer's watch history when one is identified.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (Detail, error) {
	found, err := s.store.IncrementViews(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.ID
	}

	likes, isLiked, isSubscribed, err := s.store.Engagement(ctx, found.ID, found.Owner.ID, viewerID)
	if err != nil {
		return Detail{}, err
	}

	if viewer != nil {
		if err := s.history.AddWatchHistory(ctx, viewer.ID, found.ID); err != nil {
			log.Printf("append watch history for user %s: %v", viewer.ID, err)
		}
	}

	return Detail{Video: found, LikesCount: likes, IsLiked: isLiked, IsSubscribed: isSubscribed}, nil
}

// ListPage bundles a listing result with pagination metadata.
type ListPage struct {
	Videos     []Video         `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}

// List returns a filtered page of published videos.
func (s *Service) List(ctx context.Context, filter ListFilter, p pagination.Params) (ListPage, error) {
	videos, total, err := s.store.List(ctx, filter, p)
	if err != nil {
		return ListPage{}, err
	}
	return ListPage{Videos: videos, Pagination: pagination.NewMeta(total, p)}, nil
}

// UpdateInput carries mutable video fields.
type UpdateInput struct {
	Title       string
	Description string
	Thumbnail   *multipart.FileHeader
}

// Update edits a video; only the owner may do so, with no admin bypass.
func (s *Service) Update(ctx context.Context, requester auth.Identity, id uuid.UUID, input UpdateInput) (Video, error) {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return Video{}, err
	}
	if found.Owner.ID != requester.ID {
		return Video{}, ErrNotOwner
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = found.Title
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = found.Description
	}

	var thumbnailObject *string
	if input.Thumbnail != nil {
		uploaded, err := s.media.Upload(ctx, "thumbnails", input.Thumbnail)
		if err != nil {
			return Video{}, err
		}
		thumbnailObject = &uploaded

		if found.ThumbnailObject != "" {
			if err := s.media.Remove(ctx, found.ThumbnailObject); err != nil {
				log.Printf("remove replaced thumbnail %q: %v", found.ThumbnailObject, err)
			}
		}
	}

	return s.store.Update(ctx, id, title, description, thumbnailObject)
}

// Delete removes a video and best-effort cleans up its media objects, likes,
// and comments. Only the owner may delete through this path.
func (s *Service) Delete(ctx context.Context, requester auth.Identity, id uuid.UUID) error {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if found.Owner.ID != requester.ID {
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanup(ctx, found)
	return nil
}

// TogglePublish flips the publish state. Only the owner may toggle, admins
// included; moderation removes videos rather than unpublishing them.
func (s *Service) TogglePublish(ctx context.Context, requester auth.Identity, id uuid.UUID) (bool, error) {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return false, err
	}
	if found.Owner.ID != requester.ID {
		return false, ErrNotOwner
	}

	return s.store.TogglePublish(ctx, id)
}

// cleanup deletes dependent rows and stored objects after the primary delete.
// Failures are logged and swallowed; the cleanup is at-least-once-attempted,
// not guaranteed.
func (s *Service) cleanup(ctx context.Context, deleted Video) {
	if err := s.likes.DeleteByVideo(ctx, deleted.ID); err != nil {
		log.Printf("cleanup likes for video %s: %v", deleted.ID, err)
	}
	if err := s.comments.DeleteByVideo(ctx, deleted.ID); err != nil {
		log.Printf("cleanup comments for video %s: %v", deleted.ID, err)
	}
	if err := s.media.Remove(ctx, deleted.ObjectName); err != nil {
		log.Printf("cleanup video object %q: %v", deleted.ObjectName, err)
	}
	if err := s.media.Remove(ctx, deleted.ThumbnailObject); err != nil {
		log.Printf("cleanup thumbnail object %q: %v", deleted.ThumbnailObject, err)
	}
}
