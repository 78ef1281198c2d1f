package auth

import (
	"context"
	"testing"
	"time"

	"github.com/aidosqali/vidtube/internal/config"
	"github.com/google/uuid"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		BcryptCost:         4,
	}
}

func TestIssuePairAndResolveIdentity(t *testing.T) {
	store := newMemoryIdentityStore()
	identity := store.addUser("chai", RoleUser)

	service := NewTokenService(store, testAuthConfig())
	pair, err := service.IssuePair(context.Background(), identity)
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens to be issued")
	}
	if store.hashes[identity.ID] == "" {
		t.Fatalf("expected refresh token hash to be persisted")
	}

	resolved, err := service.ResolveIdentity(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("ResolveIdentity returned error: %v", err)
	}
	if resolved.ID != identity.ID || resolved.Username != "chai" {
		t.Fatalf("resolved wrong identity: %+v", resolved)
	}
}

func TestRefreshRotatesStoredToken(t *testing.T) {
	store := newMemoryIdentityStore()
	identity := store.addUser("chai", RoleUser)

	service := NewTokenService(store, testAuthConfig())
	pair, err := service.IssuePair(context.Background(), identity)
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	_, rotated, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a new refresh token after rotation")
	}

	// The original token was overwritten by the rotation and must be dead.
	_, _, err = service.Refresh(context.Background(), pair.RefreshToken)
	if err != ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked for the pre-rotation token, got %v", err)
	}

	// The rotated token is still live.
	if _, err := service.VerifyRefreshToken(context.Background(), rotated.RefreshToken); err != nil {
		t.Fatalf("rotated token should verify, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	store := newMemoryIdentityStore()
	identity := store.addUser("chai", RoleUser)

	service := NewTokenService(store, testAuthConfig())
	pair, err := service.IssuePair(context.Background(), identity)
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	if err := service.Logout(context.Background(), identity.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	_, err = service.VerifyRefreshToken(context.Background(), pair.RefreshToken)
	if err != ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	store := newMemoryIdentityStore()
	identity := store.addUser("chai", RoleUser)

	service := NewTokenService(store, testAuthConfig())
	service.nowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := service.IssueAccessToken(identity)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	service.nowFunc = time.Now
	if _, err := service.VerifyAccessToken(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyAccessTokenRejectsRefreshToken(t *testing.T) {
	store := newMemoryIdentityStore()
	identity := store.addUser("chai", RoleUser)

	service := NewTokenService(store, testAuthConfig())
	refresh, _, err := service.IssueRefreshToken(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("IssueRefreshToken returned error: %v", err)
	}

	// Signed with the refresh secret; the access verifier must not accept it.
	if _, err := service.VerifyAccessToken(refresh); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for cross-secret token, got %v", err)
	}
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	store := newMemoryIdentityStore()
	service := NewTokenService(store, testAuthConfig())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := service.VerifyAccessToken(token); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

// memoryIdentityStore implements identityStore for tests.
type memoryIdentityStore struct {
	identities map[uuid.UUID]Identity
	hashes     map[uuid.UUID]string
}

func newMemoryIdentityStore() *memoryIdentityStore {
	return &memoryIdentityStore{
		identities: make(map[uuid.UUID]Identity),
		hashes:     make(map[uuid.UUID]string),
	}
}

func (m *memoryIdentityStore) addUser(username string, role Role) Identity {
	identity := Identity{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	m.identities[identity.ID] = identity
	return identity
}

func (m *memoryIdentityStore) IdentityByID(ctx context.Context, id uuid.UUID) (Identity, error) {
	identity, ok := m.identities[id]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return identity, nil
}

func (m *memoryIdentityStore) RefreshTokenHash(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.hashes[userID], nil
}

func (m *memoryIdentityStore) StoreRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error {
	m.hashes[userID] = hash
	return nil
}

func (m *memoryIdentityStore) ClearRefreshTokenHash(ctx context.Context, userID uuid.UUID) error {
	m.hashes[userID] = ""
	return nil
}
