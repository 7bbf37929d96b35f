package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db          *gorm.DB
	users       *UserRepo
	tags        *TagRepo
	projectTags *ProjectTagRepo
	activities  *ActivityRepo
}

func NewProjectRepo(db *gorm.DB, users *UserRepo, tags *TagRepo, projectTags *ProjectTagRepo, activities *ActivityRepo) *ProjectRepo {
	return &ProjectRepo{
		db:          db,
		users:       users,
		tags:        tags,
		projectTags: projectTags,
		activities:  activities,
	}
}

// ProjectFilter narrows FindAll. Zero values do not filter.
type ProjectFilter struct {
	Type          models.ProjectType
	PublishedOnly bool
	FeaturedOnly  bool
}

func withProjectRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("ProjectTags.Tag").
		Preload("Blogs.Blog")
}

// FindAll returns the projects matching filter, newest first
func (r *ProjectRepo) FindAll(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	q := withProjectRelations(r.db.WithContext(ctx))
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}

	projects := []models.Project{}
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "projects", err)
	}
	return projects, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	project, err := findProject(withProjectRelations(r.db.WithContext(ctx)), id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project", err)
	}
	return project, nil
}

// Create inserts project together with its author, tags and activity entry.
// Nothing is written unless every step succeeds.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project, tagNames []string) (*models.Project, error) {
	var created *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.users.Ensure(tx, project.AuthorID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		tags, err := r.tags.Resolve(tx, tagNames)
		if err != nil {
			return err
		}
		if err := r.projectTags.Link(tx, project.ID, tags); err != nil {
			return err
		}
		if err := r.activities.Record(tx, models.EntityProject, project.ID, project.Title, models.ActionCreated, nil); err != nil {
			return err
		}
		created, err = findProject(withProjectRelations(tx), project.ID)
		return err
	})
	if err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}
	return created, nil
}

// Update applies cols to the project. A non-nil tagNames replaces its tag set.
func (r *ProjectRepo) Update(ctx context.Context, id string, cols map[string]any, tagNames *[]string) (*models.Project, error) {
	var updated *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findProject(tx, id)
		if err != nil {
			return err
		}
		if len(cols) > 0 {
			if err := tx.Model(&models.Project{ID: id}).Updates(cols).Error; err != nil {
				return err
			}
		}
		if tagNames != nil {
			tags, err := r.tags.Resolve(tx, *tagNames)
			if err != nil {
				return err
			}
			if err := r.projectTags.Replace(tx, id, tags); err != nil {
				return err
			}
		}
		if updated, err = findProject(withProjectRelations(tx), id); err != nil {
			return err
		}
		action := updateAction(current.Published, cols)
		return r.activities.Record(tx, models.EntityProject, id, updated.Title, action, changedFields(cols, tagNames != nil))
	})
	if err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return updated, nil
}

// Delete removes a project; its tag and blog links cascade.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findProject(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
			return err
		}
		return r.activities.Record(tx, models.EntityProject, id, current.Title, models.ActionDeleted, nil)
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	return nil
}

func findProject(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Take(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}
