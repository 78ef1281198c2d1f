package playlist

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a user-curated ordered collection of videos.
type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoCount  int64     `json:"videoCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Entry is one video inside a playlist detail view.
type Entry struct {
	VideoID       uuid.UUID `json:"videoId"`
	Title         string    `json:"title"`
	Thumbnail     string    `json:"thumbnail"`
	OwnerUsername string    `json:"ownerUsername"`
	Views         int64     `json:"views"`
	AddedAt       time.Time `json:"addedAt"`
}

// Detail is a playlist together with its videos in insertion order.
type Detail struct {
	Playlist
	Videos []Entry `json:"videos"`
}
