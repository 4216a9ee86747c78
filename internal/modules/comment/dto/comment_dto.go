package dto

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	PostID  string `json:"post_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

type DeleteCommentResponse struct {
	Message   string `json:"message"`
	CommentID string `json:"comment_id"`
}
