package user

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/config"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts account and session endpoints under /users.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService, authCfg config.AuthConfig) {
	handler := &httpHandler{service: service, authCfg: authCfg}
	users := router.Group("/users")
	{
		users.POST("/register", handler.register)
		users.POST("/login", handler.login)
		users.POST("/refresh-token", handler.refresh)
		users.GET("/c/:username", auth.OptionalAuth(tokens), handler.channelProfile)

		session := users.Group("/")
		session.Use(auth.RequireAuth(tokens))
		session.POST("/logout", handler.logout)
		session.GET("/current-user", handler.currentUser)
		session.POST("/change-password", handler.changePassword)
		session.PATCH("/update-account", handler.updateAccount)
		session.PATCH("/avatar", handler.updateAvatar)
		session.PATCH("/cover-image", handler.updateCoverImage)
		session.GET("/history", handler.watchHistory)
	}
}

type httpHandler struct {
	service *Service
	authCfg config.AuthConfig
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (h *httpHandler) register(c *gin.Context) {
	input := RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		FullName: c.PostForm("fullName"),
		Password: c.PostForm("password"),
	}
	if file, err := c.FormFile("avatar"); err == nil {
		input.Avatar = file
	}
	if file, err := c.FormFile("coverImage"); err == nil {
		input.CoverFile = file
	}

	result, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, err)
		return
	}

	auth.SetTokenCookies(c, h.authCfg, result.Tokens)
	respond.OK(c, http.StatusCreated, "user registered successfully", result)
}

func (h *httpHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	login := req.Email
	if login == "" {
		login = req.Username
	}

	result, err := h.service.Login(c.Request.Context(), LoginInput{Login: login, Password: req.Password})
	if err != nil {
		respond.Error(c, err)
		return
	}

	auth.SetTokenCookies(c, h.authCfg, result.Tokens)
	respond.OK(c, http.StatusOK, "logged in successfully", result)
}

func (h *httpHandler) refresh(c *gin.Context) {
	token := refreshTokenFromRequest(c)
	if token == "" {
		respond.Error(c, auth.ErrMissingCredential)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		respond.Error(c, err)
		return
	}

	auth.SetTokenCookies(c, h.authCfg, result.Tokens)
	respond.OK(c, http.StatusOK, "token refreshed successfully", result)
}

func (h *httpHandler) logout(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	if err := h.service.Logout(c.Request.Context(), identity.ID); err != nil {
		respond.Error(c, err)
		return
	}

	auth.ClearTokenCookies(c, h.authCfg)
	respond.OK(c, http.StatusOK, "logged out successfully", gin.H{})
}

func (h *httpHandler) currentUser(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	found, err := h.service.Get(c.Request.Context(), identity.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "current user fetched successfully", found)
}

func (h *httpHandler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := h.service.ChangePassword(c.Request.Context(), identity.ID, req.OldPassword, req.NewPassword); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "password changed successfully", gin.H{})
}

func (h *httpHandler) updateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.UpdateAccount(c.Request.Context(), identity.ID, req.FullName, req.Email)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "account updated successfully", updated)
}

func (h *httpHandler) updateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respond.ValidationError(c, "avatar file is required")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.UpdateAvatar(c.Request.Context(), identity.ID, file)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "avatar updated successfully", updated)
}

func (h *httpHandler) updateCoverImage(c *gin.Context) {
	file, err := c.FormFile("coverImage")
	if err != nil {
		respond.ValidationError(c, "cover image file is required")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.UpdateCoverImage(c.Request.Context(), identity.ID, file)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "cover image updated successfully", updated)
}

func (h *httpHandler) channelProfile(c *gin.Context) {
	var viewerID *uuid.UUID
	if identity, ok := auth.CurrentIdentity(c); ok {
		viewerID = &identity.ID
	}

	profile, err := h.service.ChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "channel profile fetched successfully", profile)
}

func (h *httpHandler) watchHistory(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	entries, err := h.service.WatchHistory(c.Request.Context(), identity.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "watch history fetched successfully", entries)
}

// refreshTokenFromRequest reads the refresh token, cookie first, then body.
func refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.RefreshTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}
