package dto

type CreateUserRequest struct {
	FirstName  string  `json:"first_name" binding:"required,max=100"`
	ProfilePic *string `json:"profile_pic" binding:"omitempty,max=500"`
}
