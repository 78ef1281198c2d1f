package video

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrVideoNotFound signals that the video could not be located.
	ErrVideoNotFound = apperr.New(apperr.NotFound, "video not found")
	// ErrNotOwner is returned when a requester mutates a video they do not own.
	ErrNotOwner = apperr.New(apperr.Authorization, "you are not allowed to modify this video")
)
