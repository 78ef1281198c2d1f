package like

import (
	"time"

	"github.com/google/uuid"
)

// LikedVideo is one entry in a user's liked-videos listing.
type LikedVideo struct {
	VideoID       uuid.UUID `json:"videoId"`
	Title         string    `json:"title"`
	Thumbnail     string    `json:"thumbnail"`
	OwnerUsername string    `json:"ownerUsername"`
	Views         int64     `json:"views"`
	LikedAt       time.Time `json:"likedAt"`
}
