package subscription

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts subscription endpoints under /subscriptions.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	subs := router.Group("/subscriptions")
	subs.Use(auth.RequireAuth(tokens))
	{
		subs.POST("/c/:channelID", handler.toggle)
		subs.GET("/c/:channelID", handler.subscribers)
		subs.GET("/u/:subscriberID", handler.channels)
	}
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) toggle(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelID"))
	if err != nil {
		respond.ValidationError(c, "invalid channel id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	subscribed, err := h.service.Toggle(c.Request.Context(), identity.ID, channelID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "subscription toggled successfully", gin.H{"subscribed": subscribed})
}

func (h *httpHandler) subscribers(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelID"))
	if err != nil {
		respond.ValidationError(c, "invalid channel id")
		return
	}

	list, err := h.service.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "subscribers fetched successfully", list)
}

func (h *httpHandler) channels(c *gin.Context) {
	subscriberID, err := uuid.Parse(c.Param("subscriberID"))
	if err != nil {
		respond.ValidationError(c, "invalid subscriber id")
		return
	}

	list, err := h.service.Channels(c.Request.Context(), subscriberID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "subscribed channels fetched successfully", list)
}
