package models

import "strings"

type ProjectType string

const (
	ProjectTypeProfessional ProjectType = "PROFESSIONAL"
	ProjectTypePersonal     ProjectType = "PERSONAL"
)

// ParseProjectType accepts any casing and returns the canonical upper-case value.
func ParseProjectType(s string) (ProjectType, bool) {
	switch t := ProjectType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ProjectTypeProfessional, ProjectTypePersonal:
		return t, true
	}
	return "", false
}

type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
)

func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch st := ProjectStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return st, true
	}
	return "", false
}

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Activity vocabulary used by the dashboard feed.
const (
	EntityProject = "project"
	EntityBlog    = "blog"

	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionPublished = "published"
	ActionDeleted   = "deleted"
)
