package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the author that owns projects and blogs
type User struct {
	ID        string    `json:"id" db:"id" gorm:"column:id;type:text;primaryKey"`
	Email     string    `json:"email" db:"email" gorm:"column:email;type:text;not null;uniqueIndex"`
	Name      string    `json:"name" db:"name" gorm:"column:name;type:text"`
	Role      Role      `json:"role,omitempty" db:"role" gorm:"column:role;type:text;not null"`
	CreatedAt time.Time `json:"-" db:"created_at" gorm:"column:created_at;type:timestamptz;not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Author is the public projection of a user embedded in content responses.
type Author struct {
	ID    string `json:"id" gorm:"column:id"`
	Name  string `json:"name" gorm:"column:name"`
	Email string `json:"email" gorm:"column:email"`
}

func (Author) TableName() string { return "users" }
