package playlist

import (
	"context"
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts playlist endpoints under /playlists.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	playlists := router.Group("/playlists")
	{
		playlists.GET("/:playlistID", handler.get)
		playlists.GET("/user/:userID", handler.listByUser)

		owned := playlists.Group("/")
		owned.Use(auth.RequireAuth(tokens))
		owned.POST("", handler.create)
		owned.PATCH("/:playlistID", handler.update)
		owned.DELETE("/:playlistID", handler.delete)
		owned.PATCH("/add/:videoID/:playlistID", handler.addVideo)
		owned.PATCH("/remove/:videoID/:playlistID", handler.removeVideo)
	}
}

type httpHandler struct {
	service *Service
}

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *httpHandler) create(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	created, err := h.service.Create(c.Request.Context(), identity, req.Name, req.Description)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusCreated, "playlist created successfully", created)
}

func (h *httpHandler) get(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("playlistID"))
	if err != nil {
		respond.ValidationError(c, "invalid playlist id")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), playlistID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "playlist fetched successfully", detail)
}

func (h *httpHandler) listByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		respond.ValidationError(c, "invalid user id")
		return
	}

	playlists, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "playlists fetched successfully", playlists)
}

func (h *httpHandler) update(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("playlistID"))
	if err != nil {
		respond.ValidationError(c, "invalid playlist id")
		return
	}

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.Update(c.Request.Context(), identity, playlistID, req.Name, req.Description)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "playlist updated successfully", updated)
}

func (h *httpHandler) delete(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("playlistID"))
	if err != nil {
		respond.ValidationError(c, "invalid playlist id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := h.service.Delete(c.Request.Context(), identity, playlistID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "playlist deleted successfully", gin.H{})
}

func (h *httpHandler) addVideo(c *gin.Context) {
	h.membership(c, h.service.AddVideo, "video added to playlist")
}

func (h *httpHandler) removeVideo(c *gin.Context) {
	h.membership(c, h.service.RemoveVideo, "video removed from playlist")
}

func (h *httpHandler) membership(c *gin.Context, fn func(ctx context.Context, requester auth.Identity, playlistID, videoID uuid.UUID) error, message string) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}
	playlistID, err := uuid.Parse(c.Param("playlistID"))
	if err != nil {
		respond.ValidationError(c, "invalid playlist id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := fn(c.Request.Context(), identity, playlistID, videoID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, message, gin.H{})
}
