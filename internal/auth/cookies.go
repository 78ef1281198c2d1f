package auth

import (
	"github.com/aidosqali/vidtube/internal/config"
	"github.com/gin-gonic/gin"
)

// SetTokenCookies attaches the pair as http-only cookies scoped to the API.
func SetTokenCookies(c *gin.Context, cfg config.AuthConfig, pair TokenPair) {
	accessMaxAge := int(cfg.AccessTokenTTL.Seconds())
	refreshMaxAge := int(cfg.RefreshTokenTTL.Seconds())

	c.SetCookie(AccessTokenCookie, pair.AccessToken, accessMaxAge, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, refreshMaxAge, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// ClearTokenCookies expires both token cookies.
func ClearTokenCookies(c *gin.Context, cfg config.AuthConfig) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}
