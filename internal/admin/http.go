package admin

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts the moderation endpoints under /admin. Every route
// requires an authenticated admin.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	admin := router.Group("/admin")
	admin.Use(auth.RequireAuth(tokens), auth.RequireAdmin())
	{
		admin.GET("/stats", handler.systemStats)
		admin.GET("/users", handler.listUsers)
		admin.GET("/users/:userID", handler.userByID)
		admin.DELETE("/users/:userID", handler.deleteUser)
		admin.GET("/videos/:userID", handler.videosByUser)
		admin.DELETE("/video/:videoID", handler.deleteVideo)
		admin.DELETE("/video/copyright/:videoID", handler.copyrightStrike)
	}
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) systemStats(c *gin.Context) {
	stats, err := h.service.SystemStats(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "system stats fetched successfully", stats)
}

func (h *httpHandler) listUsers(c *gin.Context) {
	params := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	page, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "users fetched successfully", page)
}

func (h *httpHandler) userByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		respond.ValidationError(c, "invalid user id")
		return
	}

	found, err := h.service.UserByID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "user fetched successfully", found)
}

func (h *httpHandler) deleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		respond.ValidationError(c, "invalid user id")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "user deleted successfully", nil)
}

func (h *httpHandler) videosByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		respond.ValidationError(c, "invalid user id")
		return
	}

	params := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	page, err := h.service.VideosByUser(c.Request.Context(), userID, params)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "videos fetched successfully", page)
}

func (h *httpHandler) deleteVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	if err := h.service.DeleteVideo(c.Request.Context(), videoID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "video deleted successfully", nil)
}

func (h *httpHandler) copyrightStrike(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	strikes, err := h.service.CopyrightStrike(c.Request.Context(), videoID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "video removed for copyright violation", gin.H{
		"copyrightStrikes": strikes,
	})
}
