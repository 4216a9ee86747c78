package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	ProfilePic *string   `gorm:"size:500" json:"profile_pic"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Posts     []Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments  []Comment  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reactions []Reaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
