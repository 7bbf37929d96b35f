package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db            *gorm.DB
	tagRepo       *TagRepo
	projectRepo   *ProjectRepo
	blogRepo      *BlogRepo
	activityRepo  *ActivityRepo
	dashboardRepo *DashboardRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	users := NewUserRepo(db)
	tags := NewTagRepo(db)
	projectTags := NewProjectTagRepo(db)
	blogTags := NewBlogTagRepo(db)
	activities := NewActivityRepo(db)

	// User and tag-join repos only act inside the project and blog transactions.
	return Database{
		db:            db,
		tagRepo:       tags,
		projectRepo:   NewProjectRepo(db, users, tags, projectTags, activities),
		blogRepo:      NewBlogRepo(db, users, tags, blogTags, activities),
		activityRepo:  activities,
		dashboardRepo: NewDashboardRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DB() *gorm.DB {
	return d.db
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) ActivityRepo() *ActivityRepo {
	return d.activityRepo
}

func (d Database) DashboardRepo() *DashboardRepo {
	return d.dashboardRepo
}
