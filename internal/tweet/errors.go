package tweet

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrTweetNotFound signals that the tweet could not be located.
	ErrTweetNotFound = apperr.New(apperr.NotFound, "tweet not found")
	// ErrNotOwner is returned when a requester mutates a tweet they do not own.
	ErrNotOwner = apperr.New(apperr.Authorization, "you are not allowed to modify this tweet")
)
