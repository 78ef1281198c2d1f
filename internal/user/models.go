package user

import (
	"time"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/google/uuid"
)

// User is the persisted account record. Hash fields are never serialized;
// copyright strikes surface only through the explicit SensitiveView.
type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	AvatarURL        string    `json:"avatar"`
	CoverImageURL    string    `json:"coverImage,omitempty"`
	Role             auth.Role `json:"role"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash string    `json:"-"`
	CopyrightStrikes int       `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Sanitized strips credential material for response payloads.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshTokenHash = ""
	u.CopyrightStrikes = 0
	return u
}

// Identity converts the record into the request-scoped identity shape.
func (u User) Identity() auth.Identity {
	return auth.Identity{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// SensitiveView is the explicit opt-in projection used by admin moderation.
// Strike counts become visible; password and token hashes still never do.
type SensitiveView struct {
	User
	CopyrightStrikes int `json:"copyrightStrikes"`
}

// Sensitive wraps the record in its moderation projection.
func (u User) Sensitive() SensitiveView {
	return SensitiveView{User: u.Sanitized(), CopyrightStrikes: u.CopyrightStrikes}
}

// ChannelProfile is the public channel page for a username, personalized with
// the viewer's subscription state when a viewer is identified.
type ChannelProfile struct {
	User
	SubscriberCount   int64 `json:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}

// WatchEntry is one video in a user's watch history, newest first.
type WatchEntry struct {
	VideoID       uuid.UUID `json:"videoId"`
	Title         string    `json:"title"`
	Thumbnail     string    `json:"thumbnail"`
	OwnerUsername string    `json:"ownerUsername"`
	WatchedAt     time.Time `json:"watchedAt"`
}
