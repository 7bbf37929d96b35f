package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const blogSlugConstraint = "blogs_slug_key"

type BlogRepo struct {
	db         *gorm.DB
	users      *UserRepo
	tags       *TagRepo
	blogTags   *BlogTagRepo
	activities *ActivityRepo
}

func NewBlogRepo(db *gorm.DB, users *UserRepo, tags *TagRepo, blogTags *BlogTagRepo, activities *ActivityRepo) *BlogRepo {
	return &BlogRepo{
		db:         db,
		users:      users,
		tags:       tags,
		blogTags:   blogTags,
		activities: activities,
	}
}

// BlogFilter narrows FindAll. Zero values do not filter; Limit 0 means no limit.
type BlogFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Limit         int
}

func withBlogRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("BlogTags.Tag").
		Preload("ProjectBlogs.Project")
}

// FindAll returns the blogs matching filter, newest first
func (r *BlogRepo) FindAll(ctx context.Context, filter BlogFilter) ([]models.Blog, error) {
	q := withBlogRelations(r.db.WithContext(ctx))
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	blogs := []models.Blog{}
	if err := q.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "blogs", err)
	}
	return blogs, nil
}

// FindByID returns a blog by its ID
func (r *BlogRepo) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := findBlog(withBlogRelations(r.db.WithContext(ctx)), "id = ?", id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blog", err)
	}
	return blog, nil
}

// FindBySlug returns a blog by its public slug
func (r *BlogRepo) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := findBlog(withBlogRelations(r.db.WithContext(ctx)), "slug = ?", slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blog", err)
	}
	return blog, nil
}

// Create inserts blog together with its author, tags and activity entry.
// A taken slug fails with a duplicate slug error, whether caught by the
// pre-check or by the unique constraint under a concurrent create.
func (r *BlogRepo) Create(ctx context.Context, blog *models.Blog, tagNames []string) (*models.Blog, error) {
	var created *models.Blog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugFree(tx, blog.Slug, ""); err != nil {
			return err
		}
		if err := r.users.Ensure(tx, blog.AuthorID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(blog).Error; err != nil {
			if isUniqueViolation(err, blogSlugConstraint) {
				return errs.NewDuplicateSlugError(blog.Slug)
			}
			return err
		}
		tags, err := r.tags.Resolve(tx, tagNames)
		if err != nil {
			return err
		}
		if err := r.blogTags.Link(tx, blog.ID, tags); err != nil {
			return err
		}
		if err := r.activities.Record(tx, models.EntityBlog, blog.ID, blog.Title, models.ActionCreated, nil); err != nil {
			return err
		}
		created, err = findBlog(withBlogRelations(tx), "id = ?", blog.ID)
		return err
	})
	if err != nil {
		return nil, errs.NewDatabaseError("create", "blog", err)
	}
	return created, nil
}

// Update applies cols to the blog. A non-nil tagNames replaces its tag set.
func (r *BlogRepo) Update(ctx context.Context, id string, cols map[string]any, tagNames *[]string) (*models.Blog, error) {
	var updated *models.Blog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findBlog(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if newSlug, ok := cols["slug"].(string); ok && newSlug != current.Slug {
			if err := ensureSlugFree(tx, newSlug, id); err != nil {
				return err
			}
		}
		if len(cols) > 0 {
			if err := tx.Model(&models.Blog{ID: id}).Updates(cols).Error; err != nil {
				if isUniqueViolation(err, blogSlugConstraint) {
					return errs.NewDuplicateSlugError(cols["slug"].(string))
				}
				return err
			}
		}
		if tagNames != nil {
			tags, err := r.tags.Resolve(tx, *tagNames)
			if err != nil {
				return err
			}
			if err := r.blogTags.Replace(tx, id, tags); err != nil {
				return err
			}
		}
		if updated, err = findBlog(withBlogRelations(tx), "id = ?", id); err != nil {
			return err
		}
		action := updateAction(current.Published, cols)
		return r.activities.Record(tx, models.EntityBlog, id, updated.Title, action, changedFields(cols, tagNames != nil))
	})
	if err != nil {
		return nil, errs.NewDatabaseError("update", "blog", err)
	}
	return updated, nil
}

// Delete removes a blog; its tag and project links cascade.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findBlog(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Blog{}, "id = ?", id).Error; err != nil {
			return err
		}
		return r.activities.Record(tx, models.EntityBlog, id, current.Title, models.ActionDeleted, nil)
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "blog", err)
	}
	return nil
}

// ensureSlugFree fails when another blog than exceptID already owns slug.
func ensureSlugFree(tx *gorm.DB, slug, exceptID string) error {
	var count int64
	q := tx.Model(&models.Blog{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewDuplicateSlugError(slug)
	}
	return nil
}

func findBlog(db *gorm.DB, query string, arg any) (*models.Blog, error) {
	var blog models.Blog
	err := db.Take(&blog, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("blog")
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
