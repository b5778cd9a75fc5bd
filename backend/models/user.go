package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         string `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"uniqueIndex" json:"username"`
	Password   string `json:"password"`
	Profession string `json:"profession"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// VideoInterest is one topic a user wants video recommendations for.
type VideoInterest struct {
	ID       string `gorm:"primaryKey" json:"_id"`
	Username string `gorm:"index" json:"username"`
	Interest string `json:"interest"`
}

func (vi *VideoInterest) BeforeCreate(tx *gorm.DB) error {
	if vi.ID == "" {
		vi.ID = uuid.NewString()
	}
	return nil
}
