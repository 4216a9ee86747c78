package dto

// CreatePostRequest is bound from multipart form fields; the optional image
// travels alongside as the "image" file part.
type CreatePostRequest struct {
	Content string `form:"content" binding:"required"`
	UserID  string `form:"user_id" binding:"required"`
}

type DeletePostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"post_id"`
}
