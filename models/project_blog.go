package models

// ProjectBlog records which blogs write about which projects. Read-only through the API.
type ProjectBlog struct {
	ProjectID string `json:"projectId" db:"project_id" gorm:"column:project_id;type:text;primaryKey"`
	BlogID    string `json:"blogId" db:"blog_id" gorm:"column:blog_id;type:text;primaryKey;index"`

	Project *ProjectSummary `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Blog    *BlogSummary    `json:"blog,omitempty" gorm:"foreignKey:BlogID;references:ID"`
}

func (ProjectBlog) TableName() string { return "project_blogs" }
