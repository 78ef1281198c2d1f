package playlist

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrPlaylistNotFound signals that the playlist could not be located.
	ErrPlaylistNotFound = apperr.New(apperr.NotFound, "playlist not found")
	// ErrNotOwner is returned when a requester mutates a playlist they do not own.
	ErrNotOwner = apperr.New(apperr.Authorization, "you are not allowed to modify this playlist")
	// ErrVideoAlreadyAdded indicates the video is already in the playlist.
	ErrVideoAlreadyAdded = apperr.New(apperr.Conflict, "video already in playlist")
	// ErrVideoNotInPlaylist indicates the video is not a member of the playlist.
	ErrVideoNotInPlaylist = apperr.New(apperr.NotFound, "video not in playlist")
	// ErrVideoNotFound is returned when the added video does not exist.
	ErrVideoNotFound = apperr.New(apperr.NotFound, "video not found")
)
