package auth

import (
	"strings"

	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
)

type contextKey string

const identityContextKey contextKey = "vidtubeIdentity"

// Cookie names shared with the login/refresh handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RequireAuth resolves the requester's identity and aborts with 401 when the
// credential is missing, unverifiable, or references a deleted user.
func RequireAuth(service *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			respond.Error(c, ErrMissingCredential)
			return
		}

		identity, err := service.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, ErrInvalidToken)
			return
		}

		c.Set(string(identityContextKey), identity)
		c.Next()
	}
}

// OptionalAuth runs the same resolution but never fails the request; endpoints
// that personalize output for logged-in viewers stay readable for anonymous ones.
func OptionalAuth(service *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c); ok {
			if identity, err := service.ResolveIdentity(c.Request.Context(), token); err == nil {
				c.Set(string(identityContextKey), identity)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			respond.Error(c, ErrMissingCredential)
			return
		}
		if !identity.IsAdmin() {
			respond.Error(c, ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// CurrentIdentity extracts the resolved identity from the request context.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(string(identityContextKey))
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// extractToken reads the access token, preferring the cookie over the
// Authorization header when both are present.
func extractToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader("Authorization")
	if token := extractBearerToken(header); token != "" {
		return token, true
	}

	return "", false
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
