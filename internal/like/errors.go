package like

import "github.com/aidosqali/vidtube/internal/apperr"

// ErrTargetNotFound is returned when the liked video, comment, or tweet
// does not exist.
var ErrTargetNotFound = apperr.New(apperr.NotFound, "liked entity not found")
