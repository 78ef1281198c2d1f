package tweet

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts tweet endpoints under /tweets.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	tweets := router.Group("/tweets")
	{
		tweets.GET("/user/:userID", handler.listByUser)

		owned := tweets.Group("/")
		owned.Use(auth.RequireAuth(tokens))
		owned.POST("", handler.create)
		owned.PATCH("/:tweetID", handler.update)
		owned.DELETE("/:tweetID", handler.delete)
	}
}

type httpHandler struct {
	service *Service
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *httpHandler) create(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	created, err := h.service.Create(c.Request.Context(), identity, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusCreated, "tweet created successfully", created)
}

func (h *httpHandler) listByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		respond.ValidationError(c, "invalid user id")
		return
	}

	tweets, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "user tweets fetched successfully", tweets)
}

func (h *httpHandler) update(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweetID"))
	if err != nil {
		respond.ValidationError(c, "invalid tweet id")
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.Update(c.Request.Context(), identity, tweetID, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "tweet updated successfully", updated)
}

func (h *httpHandler) delete(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweetID"))
	if err != nil {
		respond.ValidationError(c, "invalid tweet id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := h.service.Delete(c.Request.Context(), identity, tweetID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "tweet deleted successfully", gin.H{})
}
