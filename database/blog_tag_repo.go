package database

import (
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// Link inserts one join row per tag
func (r *BlogTagRepo) Link(tx *gorm.DB, blogID string, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.BlogTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.BlogTag{BlogID: blogID, TagID: tag.ID})
	}
	return tx.Omit("Tag").Create(&links).Error
}

// Replace swaps the blog's tag set for tags
func (r *BlogTagRepo) Replace(tx *gorm.DB, blogID string, tags []models.Tag) error {
	if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogTag{}).Error; err != nil {
		return err
	}
	return r.Link(tx, blogID, tags)
}
