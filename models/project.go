package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a portfolio entry with its author, tags and linked blogs
type Project struct {
	ID          string        `json:"id" db:"id" gorm:"column:id;type:text;primaryKey"`
	Title       string        `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Description string        `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	Type        ProjectType   `json:"type" db:"type" gorm:"column:type;type:text;not null"`
	Status      ProjectStatus `json:"status" db:"status" gorm:"column:status;type:text;not null"`
	ImageURL    *string       `json:"imageUrl" db:"image_url" gorm:"column:image_url;type:text"`
	GithubURL   *string       `json:"githubUrl" db:"github_url" gorm:"column:github_url;type:text"`
	LiveURL     *string       `json:"liveUrl" db:"live_url" gorm:"column:live_url;type:text"`
	Featured    bool          `json:"featured" db:"featured" gorm:"column:featured;not null"`
	Published   bool          `json:"published" db:"published" gorm:"column:published;not null"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null"`
	AuthorID    string        `json:"authorId" db:"author_id" gorm:"column:author_id;type:text;not null;index"`

	Author      *Author       `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	ProjectTags []ProjectTag  `json:"projectTags" gorm:"foreignKey:ProjectID;references:ID"`
	Blogs       []ProjectBlog `json:"blogs" gorm:"foreignKey:ProjectID;references:ID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectStatusInProgress
	}
	return nil
}

// TagNames flattens the tag links into their names, in link order.
func (p Project) TagNames() []string {
	names := make([]string, 0, len(p.ProjectTags))
	for _, pt := range p.ProjectTags {
		names = append(names, pt.Tag.Name)
	}
	return names
}

// ProjectSummary is the slice of a project embedded in blog responses.
type ProjectSummary struct {
	ID     string        `json:"id" gorm:"column:id"`
	Title  string        `json:"title" gorm:"column:title"`
	Type   ProjectType   `json:"type" gorm:"column:type"`
	Status ProjectStatus `json:"status" gorm:"column:status"`
}

func (ProjectSummary) TableName() string { return "projects" }
