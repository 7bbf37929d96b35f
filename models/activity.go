package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity is one entry of the admin dashboard's recent activity feed
type Activity struct {
	ID         string            `json:"id" db:"id" gorm:"column:id;type:text;primaryKey"`
	EntityType string            `json:"type" db:"entity_type" gorm:"column:entity_type;type:text;not null"`
	EntityID   string            `json:"entityId" db:"entity_id" gorm:"column:entity_id;type:text;not null"`
	Title      string            `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Action     string            `json:"action" db:"action" gorm:"column:action;type:text;not null"`
	Details    datatypes.JSONMap `json:"details,omitempty" db:"details" gorm:"column:details;type:jsonb"`
	CreatedAt  time.Time         `json:"timestamp" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;index"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
