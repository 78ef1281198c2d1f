package subscription

import (
	"time"

	"github.com/google/uuid"
)

// ChannelSummary is the slim user view used by both subscriber listings.
type ChannelSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
	Since    time.Time `json:"since"`
}
