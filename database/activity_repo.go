package database

import (
	"context"
	"slices"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultRecentActivity = 10

type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db}
}

// Record appends an entry to the activity feed inside tx
func (r *ActivityRepo) Record(tx *gorm.DB, entityType, entityID, title, action string, details datatypes.JSONMap) error {
	return tx.Create(&models.Activity{
		EntityType: entityType,
		EntityID:   entityID,
		Title:      title,
		Action:     action,
		Details:    details,
	}).Error
}

// Recent returns the newest limit entries
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultRecentActivity
	}
	activities := []models.Activity{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "activity", err)
	}
	return activities, nil
}

// updateAction reports "published" when the update flips an unpublished row
// to published, "updated" otherwise.
func updateAction(wasPublished bool, cols map[string]any) string {
	if published, ok := cols["published"].(bool); ok && published && !wasPublished {
		return models.ActionPublished
	}
	return models.ActionUpdated
}

func changedFields(cols map[string]any, tagsChanged bool) datatypes.JSONMap {
	fields := make([]string, 0, len(cols)+1)
	for col := range cols {
		fields = append(fields, col)
	}
	if tagsChanged {
		fields = append(fields, "tags")
	}
	slices.Sort(fields)
	return datatypes.JSONMap{"fields": fields}
}
