package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Comments  []Comment  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reactions []Reaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
