package handler

import (
	"net/http"

	commentDto "anoa.com/socialfeed/internal/modules/comment/dto"
	comment "anoa.com/socialfeed/internal/modules/comment/service"
	"anoa.com/socialfeed/pkg/response"
	"anoa.com/socialfeed/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateComment(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	requesterID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	commentID := c.Param("comment_id")
	if err := h.service.DeleteComment(c.Request.Context(), commentID, requesterID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentDto.DeleteCommentResponse{
		Message:   "Comment deleted successfully",
		CommentID: commentID,
	})
}
