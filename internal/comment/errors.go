package comment

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrCommentNotFound signals that the comment could not be located.
	ErrCommentNotFound = apperr.New(apperr.NotFound, "comment not found")
	// ErrVideoNotFound is returned when commenting on a video that does not exist.
	ErrVideoNotFound = apperr.New(apperr.NotFound, "video not found")
	// ErrNotOwner is returned when a requester mutates a comment they do not own.
	ErrNotOwner = apperr.New(apperr.Authorization, "you are not allowed to modify this comment")
)
