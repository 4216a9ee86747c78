package dto

type ReactionRequest struct {
	PostID string `json:"post_id" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
	// Type defaults to "like"; "unlike" removes the caller's reaction.
	Type string `json:"type" binding:"max=50"`
}

type ReactionCountResponse struct {
	Count int64 `json:"count"`
}
