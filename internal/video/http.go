package video

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts video endpoints under /videos.
func RegisterRoutes(router *gin.RouterGroup, service *Service, tokens *auth.TokenService) {
	handler := &httpHandler{service: service}
	videos := router.Group("/videos")
	{
		videos.GET("", auth.OptionalAuth(tokens), handler.list)
		videos.GET("/:videoID", auth.OptionalAuth(tokens), handler.get)

		owned := videos.Group("/")
		owned.Use(auth.RequireAuth(tokens))
		owned.POST("/publish", handler.publish)
		owned.PATCH("/:videoID", handler.update)
		owned.DELETE("/:videoID", handler.delete)
		owned.PATCH("/toggle/publish/:videoID", handler.togglePublish)
	}
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) list(c *gin.Context) {
	p := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	filter := ListFilter{
		Query:     c.Query("query"),
		SortBy:    c.Query("sortBy"),
		Ascending: c.Query("sortType") == "asc",
	}
	if raw := c.Query("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			respond.ValidationError(c, "invalid user id")
			return
		}
		filter.OwnerID = &ownerID

		// Owners browsing their own uploads see unpublished videos too.
		if identity, ok := auth.CurrentIdentity(c); ok && identity.ID == ownerID {
			filter.IncludeUnpublished = true
		}
	}

	page, err := h.service.List(c.Request.Context(), filter, p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "videos fetched successfully", page)
}

func (h *httpHandler) get(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	var viewer *auth.Identity
	if identity, ok := auth.CurrentIdentity(c); ok {
		viewer = &identity
	}

	detail, err := h.service.Get(c.Request.Context(), videoID, viewer)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "video fetched successfully", detail)
}

func (h *httpHandler) publish(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	input := PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    c.PostForm("duration"),
	}
	if file, err := c.FormFile("video"); err == nil {
		input.VideoFile = file
	}
	if file, err := c.FormFile("thumbnail"); err == nil {
		input.Thumbnail = file
	}

	created, err := h.service.Publish(c.Request.Context(), identity, input)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusCreated, "video uploaded successfully", created)
}

func (h *httpHandler) update(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)

	input := UpdateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if file, err := c.FormFile("thumbnail"); err == nil {
		input.Thumbnail = file
	}

	updated, err := h.service.Update(c.Request.Context(), identity, videoID, input)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "video updated successfully", updated)
}

func (h *httpHandler) delete(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if err := h.service.Delete(c.Request.Context(), identity, videoID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "video deleted successfully", gin.H{})
}

func (h *httpHandler) togglePublish(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		respond.ValidationError(c, "invalid video id")
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	published, err := h.service.TogglePublish(c.Request.Context(), identity, videoID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, http.StatusOK, "video publish status toggled successfully", gin.H{"isPublished": published})
}
