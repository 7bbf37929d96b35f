package models

// BlogTag links a blog to a tag
type BlogTag struct {
	BlogID string `json:"blogId" db:"blog_id" gorm:"column:blog_id;type:text;primaryKey"`
	TagID  string `json:"tagId" db:"tag_id" gorm:"column:tag_id;type:text;primaryKey;index"`

	Tag Tag `json:"tag" gorm:"foreignKey:TagID;references:ID"`
}

func (BlogTag) TableName() string { return "blog_tags" }
