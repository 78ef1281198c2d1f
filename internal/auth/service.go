package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aidosqali/vidtube/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "vidtube"
	tokenAudience = "vidtube-api"
)

// identityStore abstracts the credential persistence the token service needs.
type identityStore interface {
	IdentityByID(ctx context.Context, id uuid.UUID) (Identity, error)
	RefreshTokenHash(ctx context.Context, userID uuid.UUID) (string, error)
	StoreRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error
	ClearRefreshTokenHash(ctx context.Context, userID uuid.UUID) error
}

// TokenService issues and verifies access/refresh token pairs.
//
// Refresh tokens rotate on every redemption: a user holds at most one valid
// refresh token, and issuing a new one invalidates the previous by overwrite.
// Two concurrent refresh calls for the same user race on that overwrite;
// last writer wins and the loser's refresh token goes stale immediately.
type TokenService struct {
	store   identityStore
	cfg     config.AuthConfig
	nowFunc func() time.Time
	parser  *jwt.Parser
}

// NewTokenService creates a TokenService with dependencies.
func NewTokenService(store identityStore, cfg config.AuthConfig) *TokenService {
	return &TokenService{
		store:   store,
		cfg:     cfg,
		nowFunc: time.Now,
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// IssueAccessToken signs a short-lived stateless access token.
func (s *TokenService) IssueAccessToken(identity Identity) (string, time.Time, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := jwt.MapClaims{
		"sub":      identity.ID.String(),
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"username": identity.Username,
		"role":     string(identity.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// IssueRefreshToken signs a long-lived refresh token and persists its hash
// onto the user record, overwriting any previously issued value.
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.cfg.RefreshTokenTTL)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iss": tokenIssuer,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	hash := hashToken(signed, s.cfg.RefreshTokenSecret)
	if err := s.store.StoreRefreshTokenHash(ctx, userID, hash); err != nil {
		return "", time.Time{}, fmt.Errorf("store refresh token: %w", err)
	}

	return signed, expiresAt, nil
}

// IssuePair issues a fresh access and refresh token for the identity.
func (s *TokenService) IssuePair(ctx context.Context, identity Identity) (TokenPair, error) {
	accessToken, accessExpiry, err := s.IssueAccessToken(identity)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.IssueRefreshToken(ctx, identity.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}

// VerifyAccessToken checks signature and expiry and returns the subject id.
// Access tokens are stateless; no persisted state is consulted.
func (s *TokenService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	return s.verifySubject(tokenString, s.cfg.AccessTokenSecret)
}

// VerifyRefreshToken checks signature and expiry, then loads the user and
// requires the presented token to match the currently stored rotation value.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, tokenString string) (Identity, error) {
	userID, err := s.verifySubject(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		return Identity{}, err
	}

	identity, err := s.store.IdentityByID(ctx, userID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	storedHash, err := s.store.RefreshTokenHash(ctx, userID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	presented := hashToken(tokenString, s.cfg.RefreshTokenSecret)
	if storedHash == "" || !hmac.Equal([]byte(presented), []byte(storedHash)) {
		return Identity{}, ErrTokenRevoked
	}

	return identity, nil
}

// Refresh redeems a refresh token for a new pair, rotating the stored value.
// The old refresh token becomes invalid the moment the new one is persisted.
func (s *TokenService) Refresh(ctx context.Context, tokenString string) (Identity, TokenPair, error) {
	identity, err := s.VerifyRefreshToken(ctx, tokenString)
	if err != nil {
		return Identity{}, TokenPair{}, err
	}

	pair, err := s.IssuePair(ctx, identity)
	if err != nil {
		return Identity{}, TokenPair{}, err
	}

	return identity, pair, nil
}

// Logout clears the stored refresh token, ending the rotation chain.
func (s *TokenService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.ClearRefreshTokenHash(ctx, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// ResolveIdentity validates an access token and fetches the user fresh from
// the store. The token payload is trusted only for the subject id.
func (s *TokenService) ResolveIdentity(ctx context.Context, tokenString string) (Identity, error) {
	userID, err := s.VerifyAccessToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	identity, err := s.store.IdentityByID(ctx, userID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return identity, nil
}

func (s *TokenService) verifySubject(tokenString, secret string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrInvalidToken
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if time.Unix(int64(expFloat), 0).Before(s.nowFunc()) {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

func hashToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
