package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a reusable label. Names are unique and matched exactly.
type Tag struct {
	ID   string `json:"id" db:"id" gorm:"column:id;type:text;primaryKey"`
	Name string `json:"name" db:"name" gorm:"column:name;type:text;not null;uniqueIndex"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
