package comment

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts comment endpoints under /comments.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	comments := router.Group("/comments")
	{
		comments.GET("/:videoID", handler.list)

		owned := comments.Group("/")
		owned.Use(auth.RequireAuth(tokens))
		owned.POST("/:videoID", handler.add)
		owned.PATCH("/c/:commentID", handler.update)
		owned.DELETE("/c/:commentID", handler.delete)
	}
}

type httpHandler struct {
	service *Service
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *httpHandler) list(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	p := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	page, err := h.service.List(c.Request.Context(), videoID, p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "comments fetched successfully", page)
}

func (h *httpHandler) add(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	created, err := h.service.Add(c.Request.Context(), identity, videoID, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusCreated, "comment added successfully", created)
}

func (h *httpHandler) update(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		respond.ValidationError(c, "invalid comment id")
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err.Error())
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	updated, err := h.service.Update(c.Request.Context(), identity, commentID, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "comment updated successfully", updated)
}

func (h *httpHandler) delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		respond.ValidationError(c, "invalid comment id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := h.service.Delete(c.Request.Context(), identity, commentID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "comment deleted successfully", gin.H{})
}
