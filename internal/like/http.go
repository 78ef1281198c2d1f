package like

import (
	"context"
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts like endpoints under /likes. All require a session.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	likes := router.Group("/likes")
	likes.Use(auth.RequireAuth(tokens))
	{
		likes.POST("/toggle/v/:videoID", handler.toggleVideo)
		likes.POST("/toggle/c/:commentID", handler.toggleComment)
		likes.POST("/toggle/t/:tweetID", handler.toggleTweet)
		likes.GET("/videos", handler.likedVideos)
	}
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) toggleVideo(c *gin.Context) {
	h.toggle(c, "videoID", h.service.ToggleVideo)
}

func (h *httpHandler) toggleComment(c *gin.Context) {
	h.toggle(c, "commentID", h.service.ToggleComment)
}

func (h *httpHandler) toggleTweet(c *gin.Context) {
	h.toggle(c, "tweetID", h.service.ToggleTweet)
}

func (h *httpHandler) toggle(c *gin.Context, param string, fn func(ctx context.Context, userID, targetID uuid.UUID) (bool, error)) {
	targetID, err := uuid.Parse(c.Param(param))
	if err != nil {
		respond.ValidationError(c, "invalid id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	liked, err := fn(c.Request.Context(), identity.ID, targetID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "like toggled successfully", gin.H{"liked": liked})
}

func (h *httpHandler) likedVideos(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	videos, err := h.service.LikedVideos(c.Request.Context(), identity.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "liked videos fetched successfully", videos)
}
