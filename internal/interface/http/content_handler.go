package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/evanlin/lifeboard/internal/domain/content"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

// ContentHandler wires the CMS endpoints to the content service.
type ContentHandler struct {
	svc    content.Service
	logger *slog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(svc content.Service, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, logger: logger.With("component", "http.content")}
}

// CreatePost publishes or drafts a new post.
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req content.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	post, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, contentError(err, "create_failed"))
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost rewrites an existing post.
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	var req content.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	post, err := h.svc.Update(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		abortWithError(c, contentError(err, "update_failed"))
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetPost returns one post. Drafts are only visible to the owner.
func (h *ContentHandler) GetPost(c *gin.Context) {
	_, authed := getClaims(c)
	post, err := h.svc.Get(c.Request.Context(), c.Param("slug"), authed)
	if err != nil {
		abortWithError(c, contentError(err, "get_failed"))
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListPosts returns posts newest first. Drafts are only visible to the owner.
func (h *ContentHandler) ListPosts(c *gin.Context) {
	_, authed := getClaims(c)
	posts, err := h.svc.List(c.Request.Context(), authed)
	if err != nil {
		abortWithError(c, contentError(err, "list_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost removes a post.
func (h *ContentHandler) DeletePost(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		abortWithError(c, contentError(err, "delete_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchPosts runs a nearest-neighbour search over published posts.
func (h *ContentHandler) SearchPosts(c *gin.Context) {
	results, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, contentError(err, "search_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// UploadMedia attaches a multipart file to a post.
func (h *ContentHandler) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file field is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	media, err := h.svc.AttachMedia(c.Request.Context(), c.Param("slug"), fileHeader.Filename, data, mimeType)
	if err != nil {
		abortWithError(c, contentError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusCreated, media)
}

// GetMedia streams an attachment back to the client.
func (h *ContentHandler) GetMedia(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	reader, err := h.svc.OpenMedia(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, contentError(err, "get_failed"))
		return
	}
	defer reader.Close()
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Warn("media stream interrupted", "key", key, "error", err)
	}
}

func contentError(err error, fallback string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallback
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "slug_exists"):
		status = http.StatusConflict
		code = "slug_exists"
	case apperrors.IsCode(err, "search_error"):
		status = http.StatusInternalServerError
		code = "search_failed"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}
