package video

import (
	"time"

	"github.com/google/uuid"
)

// OwnerSummary is the slim uploader view joined into listings.
type OwnerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

// Video is the persisted video record.
type Video struct {
	ID              uuid.UUID    `json:"id"`
	Owner           OwnerSummary `json:"owner"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	ObjectName      string       `json:"videoFile"`
	ThumbnailObject string       `json:"thumbnail"`
	DurationSeconds float64      `json:"duration"`
	Views           int64        `json:"views"`
	IsPublished     bool         `json:"isPublished"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Detail is a video enriched with engagement data for the playback page.
type Detail struct {
	Video
	LikesCount   int64 `json:"likesCount"`
	IsLiked      bool  `json:"isLiked"`
	IsSubscribed bool  `json:"isSubscribed"`
}

// SortField is the closed set of accepted listing sort keys.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration_seconds",
	"title":     "title",
}

// ListFilter narrows and orders a paginated listing.
type ListFilter struct {
	// Query matches title or description case-insensitively when non-empty.
	Query string
	// OwnerID restricts results to one uploader when set.
	OwnerID *uuid.UUID
	// SortBy is one of createdAt, views, duration, title; default createdAt.
	SortBy string
	// Ascending flips the default newest-first ordering.
	Ascending bool
	// IncludeUnpublished is set for owner dashboards and admin listings.
	IncludeUnpublished bool
}

// sortColumn maps the external sort key onto a whitelisted column.
func (f ListFilter) sortColumn() string {
	if col, ok := sortFields[f.SortBy]; ok {
		return col
	}
	return "created_at"
}

func (f ListFilter) sortDirection() string {
	if f.Ascending {
		return "ASC"
	}
	return "DESC"
}
