package database

import (
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// Link inserts one join row per tag
func (r *ProjectTagRepo) Link(tx *gorm.DB, projectID string, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.ProjectTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.ProjectTag{ProjectID: projectID, TagID: tag.ID})
	}
	return tx.Omit("Tag").Create(&links).Error
}

// Replace swaps the project's tag set for tags
func (r *ProjectTagRepo) Replace(tx *gorm.DB, projectID string, tags []models.Tag) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTag{}).Error; err != nil {
		return err
	}
	return r.Link(tx, projectID, tags)
}
