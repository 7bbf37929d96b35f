package models

// ProjectTag links a project to a tag
type ProjectTag struct {
	ProjectID string `json:"projectId" db:"project_id" gorm:"column:project_id;type:text;primaryKey"`
	TagID     string `json:"tagId" db:"tag_id" gorm:"column:tag_id;type:text;primaryKey;index"`

	Tag Tag `json:"tag" gorm:"foreignKey:TagID;references:ID"`
}

func (ProjectTag) TableName() string { return "project_tags" }
