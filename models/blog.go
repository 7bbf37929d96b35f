package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog is an article, publicly addressed by its unique slug
type Blog struct {
	ID        string    `json:"id" db:"id" gorm:"column:id;type:text;primaryKey"`
	Title     string    `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex"`
	Content   string    `json:"content" db:"content" gorm:"column:content;type:text;not null"`
	Excerpt   *string   `json:"excerpt" db:"excerpt" gorm:"column:excerpt;type:text"`
	ImageURL  *string   `json:"imageUrl" db:"image_url" gorm:"column:image_url;type:text"`
	Featured  bool      `json:"featured" db:"featured" gorm:"column:featured;not null"`
	Published bool      `json:"published" db:"published" gorm:"column:published;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null"`
	AuthorID  string    `json:"authorId" db:"author_id" gorm:"column:author_id;type:text;not null;index"`

	Author       *Author       `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	BlogTags     []BlogTag     `json:"blogTags" gorm:"foreignKey:BlogID;references:ID"`
	ProjectBlogs []ProjectBlog `json:"projectBlogs" gorm:"foreignKey:BlogID;references:ID"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b Blog) TagNames() []string {
	names := make([]string, 0, len(b.BlogTags))
	for _, bt := range b.BlogTags {
		names = append(names, bt.Tag.Name)
	}
	return names
}

// BlogSummary is the slice of a blog embedded in project responses.
type BlogSummary struct {
	ID        string    `json:"id" gorm:"column:id"`
	Title     string    `json:"title" gorm:"column:title"`
	Slug      string    `json:"slug" gorm:"column:slug"`
	Published bool      `json:"published" gorm:"column:published"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (BlogSummary) TableName() string { return "blogs" }
