package dashboard

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts channel-owner endpoints under /dashboard.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	dashboard := router.Group("/dashboard")
	dashboard.Use(auth.RequireAuth(tokens))
	{
		dashboard.GET("/stats", handler.stats)
		dashboard.GET("/videos", handler.videos)
	}
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) stats(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	stats, err := h.service.Stats(c.Request.Context(), identity.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "channel stats fetched successfully", stats)
}

func (h *httpHandler) videos(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	videos, err := h.service.Videos(c.Request.Context(), identity.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "channel videos fetched successfully", videos)
}
