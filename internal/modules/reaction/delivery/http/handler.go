package handler

import (
	"net/http"

	reactionDto "anoa.com/socialfeed/internal/modules/reaction/dto"
	reaction "anoa.com/socialfeed/internal/modules/reaction/service"
	"anoa.com/socialfeed/pkg/response"
	"anoa.com/socialfeed/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	service reaction.ReactionService
}

func NewReactionHandler(service reaction.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ApplyReaction(c *gin.Context) {
	var req reactionDto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.ApplyReaction(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReactionHandler) RemoveReaction(c *gin.Context) {
	if err := h.service.RemoveReaction(c.Request.Context(), c.Param("post_id"), c.Param("user_id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Reaction removed successfully", nil)
}

func (h *ReactionHandler) ListReactions(c *gin.Context) {
	reactions, err := h.service.ListReactions(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reactions)
}

func (h *ReactionHandler) CountReactions(c *gin.Context) {
	count, err := h.service.CountReactions(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reactionDto.ReactionCountResponse{Count: count})
}
