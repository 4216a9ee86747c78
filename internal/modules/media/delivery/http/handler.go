package handler

import (
	"errors"
	"net/http"

	"anoa.com/socialfeed/pkg/response"
	"anoa.com/socialfeed/pkg/storage"
	"github.com/gin-gonic/gin"
)

// MediaHandler serves stored blobs under /uploads/:key.
type MediaHandler struct {
	store storage.BlobStore
}

func NewMediaHandler(store storage.BlobStore) *MediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) ServeUpload(c *gin.Context) {
	data, err := h.store.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
