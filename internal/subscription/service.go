package subscription

import (
	"context"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/google/uuid"
)

// ErrSelfSubscription rejects subscribing to one's own channel.
var ErrSelfSubscription = apperr.New(apperr.Validation, "cannot subscribe to your own channel")

// subscriptionStore abstracts the persistence layer.
type subscriptionStore interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID uuid.UUID) ([]ChannelSummary, error)
	Channels(ctx context.Context, subscriberID uuid.UUID) ([]ChannelSummary, error)
}

// Service manages subscription edges.
type Service struct {
	store subscriptionStore
}

// NewService constructs a subscription service.
func NewService(store subscriptionStore) *Service {
	return &Service{store: store}
}

// Toggle flips the requester's subscription to a channel.
func (s *Service) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}
	return s.store.Toggle(ctx, subscriberID, channelID)
}

// Subscribers lists a channel's subscribers.
func (s *Service) Subscribers(ctx context.Context, channelID uuid.UUID) ([]ChannelSummary, error) {
	return s.store.Subscribers(ctx, channelID)
}

// Channels lists the channels a user subscribes to.
func (s *Service) Channels(ctx context.Context, subscriberID uuid.UUID) ([]ChannelSummary, error) {
	return s.store.Channels(ctx, subscriberID)
}
