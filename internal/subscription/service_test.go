package subscription

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestToggleRejectsSelfSubscription(t *testing.T) {
	store := newFakeSubscriptionStore()
	service := NewService(store)
	userID := uuid.New()

	if _, err := service.Toggle(context.Background(), userID, userID); err != ErrSelfSubscription {
		t.Fatalf("expected ErrSelfSubscription, got %v", err)
	}
	if len(store.edges) != 0 {
		t.Fatalf("expected no edge stored for rejected toggle")
	}
}

func TestToggleFlipsEdge(t *testing.T) {
	store := newFakeSubscriptionStore()
	service := NewService(store)
	subscriber := uuid.New()
	channel := uuid.New()

	subscribed, err := service.Toggle(context.Background(), subscriber, channel)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !subscribed {
		t.Fatalf("expected first toggle to subscribe")
	}

	subscribed, err = service.Toggle(context.Background(), subscriber, channel)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if subscribed {
		t.Fatalf("expected second toggle to unsubscribe")
	}
	if len(store.edges) != 0 {
		t.Fatalf("expected edge removed after second toggle")
	}
}

type fakeSubscriptionStore struct {
	edges map[[2]uuid.UUID]bool
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{edges: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeSubscriptionStore) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	key := [2]uuid.UUID{subscriberID, channelID}
	if f.edges[key] {
		delete(f.edges, key)
		return false, nil
	}
	f.edges[key] = true
	return true, nil
}

func (f *fakeSubscriptionStore) Subscribers(ctx context.Context, channelID uuid.UUID) ([]ChannelSummary, error) {
	return nil, nil
}

func (f *fakeSubscriptionStore) Channels(ctx context.Context, subscriberID uuid.UUID) ([]ChannelSummary, error) {
	return nil, nil
}
