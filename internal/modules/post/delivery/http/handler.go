package handler

import (
	"errors"
	"net/http"

	postDto "anoa.com/socialfeed/internal/modules/post/dto"
	post "anoa.com/socialfeed/internal/modules/post/service"
	"anoa.com/socialfeed/pkg/response"
	"anoa.com/socialfeed/pkg/storage"
	"anoa.com/socialfeed/pkg/validator"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	// FormFile parses the body first so a broken or oversized upload is
	// reported instead of being dropped.
	var image *storage.Upload
	fileHeader, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		response.UploadError(c, err, "failed to read image")
		return
	default:
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		defer file.Close()

		image = &storage.Upload{
			Reader:      file,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	var req postDto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreatePost(c.Request.Context(), req, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	res, err := h.service.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	requesterID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID := c.Param("post_id")
	if err := h.service.DeletePost(c.Request.Context(), postID, requesterID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, postDto.DeletePostResponse{
		Message: "Post deleted successfully",
		PostID:  postID,
	})
}
