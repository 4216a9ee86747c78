package handler

import (
	"errors"
	"net/http"

	userDto "anoa.com/socialfeed/internal/modules/user/dto"
	user "anoa.com/socialfeed/internal/modules/user/service"
	"anoa.com/socialfeed/pkg/response"
	"anoa.com/socialfeed/pkg/storage"
	"anoa.com/socialfeed/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userDto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	res, err := h.service.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("profile_pic")
	if errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_pic is required"})
		return
	}
	if err != nil {
		response.UploadError(c, err, "failed to read profile_pic")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read profile_pic"})
		return
	}
	defer file.Close()

	res, err := h.service.UpdateProfilePicture(c.Request.Context(), c.Param("user_id"), storage.Upload{
		Reader:      file,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	requesterID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID := c.Param("user_id")
	if err := h.service.DeleteUser(c.Request.Context(), userID, requesterID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "User deleted successfully", gin.H{"user_id": userID})
}
