package admin

import (
	"context"
	"log"

	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/aidosqali/vidtube/internal/user"
	"github.com/aidosqali/vidtube/internal/video"
	"github.com/google/uuid"
)

// statsStore computes the platform-wide aggregates.
type statsStore interface {
	SystemStats(ctx context.Context) (SystemStats, error)
}

// userStore is the slice of the user repository moderation needs.
type userStore interface {
	ByIDWithStrikes(ctx context.Context, id uuid.UUID) (user.User, error)
	List(ctx context.Context, p pagination.Params) ([]user.User, int64, error)
	IncrementCopyrightStrikes(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// videoStore is the slice of the video repository moderation needs.
type videoStore interface {
	ByID(ctx context.Context, id uuid.UUID) (video.Video, error)
	List(ctx context.Context, filter video.ListFilter, p pagination.Params) ([]video.Video, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// likeStore removes like edges during cascading cleanup.
type likeStore interface {
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// commentStore removes comments during cascading cleanup.
type commentStore interface {
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// subscriptionStore removes subscription edges during cascading cleanup.
type subscriptionStore interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// tweetStore removes tweets during cascading cleanup.
type tweetStore interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// mediaStore removes stored objects during cascading cleanup.
type mediaStore interface {
	Remove(ctx context.Context, objectName string) error
}

// Service implements the moderation surface. Its deletes bypass ownership
// checks; role gating happens in the middleware chain.
type Service struct {
	stats         statsStore
	users         userStore
	videos        videoStore
	likes         likeStore
	comments      commentStore
	subscriptions subscriptionStore
	tweets        tweetStore
	media         mediaStore
}

// NewService constructs an admin service.
func NewService(stats statsStore, users userStore, videos videoStore, likes likeStore,
	comments commentStore, subscriptions subscriptionStore, tweets tweetStore, media mediaStore) *Service {
	return &Service{
		stats:         stats,
		users:         users,
		videos:        videos,
		likes:         likes,
		comments:      comments,
		subscriptions: subscriptions,
		tweets:        tweets,
		media:         media,
	}
}

// SystemStats returns the platform-wide totals.
func (s *Service) SystemStats(ctx context.Context) (SystemStats, error) {
	return s.stats.SystemStats(ctx)
}

// UserPage bundles a user listing with pagination metadata.
type UserPage struct {
	Users      []user.User     `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// ListUsers returns a page of sanitized users, newest first.
func (s *Service) ListUsers(ctx context.Context, p pagination.Params) (UserPage, error) {
	users, total, err := s.users.List(ctx, p)
	if err != nil {
		return UserPage{}, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return UserPage{Users: users, Pagination: pagination.NewMeta(total, p)}, nil
}

// UserByID returns the moderation projection, strike count included.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (user.SensitiveView, error) {
	found, err := s.users.ByIDWithStrikes(ctx, id)
	if err != nil {
		return user.SensitiveView{}, err
	}
	return found.Sensitive(), nil
}

// DeleteVideo removes any video regardless of owner, then best-effort cleans
// up its likes, comments, and stored objects.
func (s *Service) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	found, err := s.videos.ByID(ctx, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return err
	}

	s.cleanupVideo(ctx, found)
	return nil
}

// CopyrightStrike deletes the video and increments its owner's strike counter,
// returning the new count.
func (s *Service) CopyrightStrike(ctx context.Context, videoID uuid.UUID) (int, error) {
	found, err := s.videos.ByID(ctx, videoID)
	if err != nil {
		return 0, err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return 0, err
	}

	s.cleanupVideo(ctx, found)

	strikes, err := s.users.IncrementCopyrightStrikes(ctx, found.Owner.ID)
	if err != nil {
		return 0, err
	}
	return strikes, nil
}

// VideoPage bundles a video listing with pagination metadata.
type VideoPage struct {
	Videos     []video.Video   `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}

// VideosByUser lists one user's uploads, unpublished included.
func (s *Service) VideosByUser(ctx context.Context, userID uuid.UUID, p pagination.Params) (VideoPage, error) {
	filter := video.ListFilter{OwnerID: &userID, IncludeUnpublished: true}
	videos, total, err := s.videos.List(ctx, filter, p)
	if err != nil {
		return VideoPage{}, err
	}
	return VideoPage{Videos: videos, Pagination: pagination.NewMeta(total, p)}, nil
}

// DeleteUser removes an account, then best-effort sweeps what the row delete
// left behind: stored media for every upload, plus the user's likes, comments,
// subscriptions, and tweets. Video rows go with the user row's cascade, so the
// listing happens first and only the objects are removed afterwards. The
// sequence is not atomic; a failure partway logs and moves on.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	videos := s.collectUserVideos(ctx, userID)

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	for _, v := range videos {
		s.removeMedia(ctx, v)
	}
	if err := s.likes.DeleteByUser(ctx, userID); err != nil {
		log.Printf("cleanup likes for user %s: %v", userID, err)
	}
	if err := s.comments.DeleteByOwner(ctx, userID); err != nil {
		log.Printf("cleanup comments for user %s: %v", userID, err)
	}
	if err := s.subscriptions.DeleteByUser(ctx, userID); err != nil {
		log.Printf("cleanup subscriptions for user %s: %v", userID, err)
	}
	if err := s.tweets.DeleteByOwner(ctx, userID); err != nil {
		log.Printf("cleanup tweets for user %s: %v", userID, err)
	}

	return nil
}

// collectUserVideos pages through every upload the user owns so that media
// objects can still be removed after the rows are gone. Listing failures are
// logged and return whatever was gathered so far.
func (s *Service) collectUserVideos(ctx context.Context, userID uuid.UUID) []video.Video {
	filter := video.ListFilter{OwnerID: &userID, IncludeUnpublished: true}

	var all []video.Video
	for page := 1; ; page++ {
		batch, total, err := s.videos.List(ctx, filter, pagination.Params{Page: page, Limit: pagination.MaxLimit})
		if err != nil {
			log.Printf("list videos for user cleanup %s: %v", userID, err)
			return all
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			return all
		}
	}
}

func (s *Service) cleanupVideo(ctx context.Context, deleted video.Video) {
	if err := s.likes.DeleteByVideo(ctx, deleted.ID); err != nil {
		log.Printf("cleanup likes for video %s: %v", deleted.ID, err)
	}
	if err := s.comments.DeleteByVideo(ctx, deleted.ID); err != nil {
		log.Printf("cleanup comments for video %s: %v", deleted.ID, err)
	}
	s.removeMedia(ctx, deleted)
}

func (s *Service) removeMedia(ctx context.Context, deleted video.Video) {
	if err := s.media.Remove(ctx, deleted.ObjectName); err != nil {
		log.Printf("cleanup video object %q: %v", deleted.ObjectName, err)
	}
	if err := s.media.Remove(ctx, deleted.ThumbnailObject); err != nil {
		log.Printf("cleanup thumbnail object %q: %v", deleted.ThumbnailObject, err)
	}
}
