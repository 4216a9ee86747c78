package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReactionLike   = "like"
	ReactionUnlike = "unlike"
)

// Reaction is unique per (post_id, user_id); the index is the final authority
// when two requests race to create the same pair.
type Reaction struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PostID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reactions_post_user,priority:1" json:"post_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reactions_post_user,priority:2;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null;default:like" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
