package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns every tag ordered by name
func (r *TagRepo) FindAll(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "tags", err)
	}
	return tags, nil
}

// Resolve finds each tag by exact name and creates the missing ones. The
// insert ignores name conflicts so concurrent resolutions of the same new
// name converge on a single row.
func (r *TagRepo) Resolve(tx *gorm.DB, names []string) ([]models.Tag, error) {
	names = NormalizeTagNames(names)
	tags := make([]models.Tag, 0, len(names))

	for _, name := range names {
		var tag models.Tag
		err := tx.Take(&tag, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&models.Tag{Name: name}).Error
			if err != nil {
				return nil, fmt.Errorf("create tag %q: %w", name, err)
			}
			err = tx.Take(&tag, "name = ?", name).Error
		}
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// NormalizeTagNames drops empty names and exact duplicates, keeping first-seen
// order. Names are matched exactly: no trimming or case folding.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
