package models

import (
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
)

// NewProject is the body accepted when creating a project.
type NewProject struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Status      string   `json:"status,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	GithubURL   *string  `json:"githubUrl,omitempty"`
	LiveURL     *string  `json:"liveUrl,omitempty"`
	Featured    bool     `json:"featured"`
	Published   bool     `json:"published"`
	AuthorID    string   `json:"authorId"`
	Tags        []string `json:"tags,omitempty"`
}

// Project validates the input and builds the row to insert. Type and status
// are accepted in any casing; an empty status means IN_PROGRESS.
func (in NewProject) Project() (*Project, error) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(in.Description) == "":
		return nil, errs.NewMissingRequiredFieldError("description")
	case strings.TrimSpace(in.Type) == "":
		return nil, errs.NewMissingRequiredFieldError("type")
	case strings.TrimSpace(in.AuthorID) == "":
		return nil, errs.NewMissingRequiredFieldError("authorId")
	}

	projectType, ok := ParseProjectType(in.Type)
	if !ok {
		return nil, errs.NewInvalidFieldError("type", "must be PROFESSIONAL or PERSONAL")
	}
	status := ProjectStatusInProgress
	if in.Status != "" {
		if status, ok = ParseProjectStatus(in.Status); !ok {
			return nil, errs.NewInvalidFieldError("status", "must be IN_PROGRESS, COMPLETED or ON_HOLD")
		}
	}

	return &Project{
		Title:       in.Title,
		Description: in.Description,
		Type:        projectType,
		Status:      status,
		ImageURL:    in.ImageURL,
		GithubURL:   in.GithubURL,
		LiveURL:     in.LiveURL,
		Featured:    in.Featured,
		Published:   in.Published,
		AuthorID:    in.AuthorID,
	}, nil
}

// NewBlog is the body accepted when creating a blog. The slug is stored as
// given and must be unique.
type NewBlog struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Excerpt   *string  `json:"excerpt,omitempty"`
	ImageURL  *string  `json:"imageUrl,omitempty"`
	Featured  bool     `json:"featured"`
	Published bool     `json:"published"`
	AuthorID  string   `json:"authorId"`
	Tags      []string `json:"tags,omitempty"`
}

func (in NewBlog) Blog() (*Blog, error) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(in.Slug) == "":
		return nil, errs.NewMissingRequiredFieldError("slug")
	case strings.TrimSpace(in.Content) == "":
		return nil, errs.NewMissingRequiredFieldError("content")
	case strings.TrimSpace(in.AuthorID) == "":
		return nil, errs.NewMissingRequiredFieldError("authorId")
	}

	return &Blog{
		Title:     in.Title,
		Slug:      in.Slug,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		ImageURL:  in.ImageURL,
		Featured:  in.Featured,
		Published: in.Published,
		AuthorID:  in.AuthorID,
	}, nil
}

// ProjectPatch is a partial update. Nil fields are left unchanged; a non-nil
// Tags replaces the tag set.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Status      *string   `json:"status,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	GithubURL   *string   `json:"githubUrl,omitempty"`
	LiveURL     *string   `json:"liveUrl,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Published   *bool     `json:"published,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Columns validates the patch and returns the column updates it implies.
func (p ProjectPatch) Columns() (map[string]any, error) {
	cols := map[string]any{}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, errs.NewInvalidFieldError("title", "must not be empty")
		}
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return nil, errs.NewInvalidFieldError("description", "must not be empty")
		}
		cols["description"] = *p.Description
	}
	if p.Type != nil {
		t, ok := ParseProjectType(*p.Type)
		if !ok {
			return nil, errs.NewInvalidFieldError("type", "must be PROFESSIONAL or PERSONAL")
		}
		cols["type"] = t
	}
	if p.Status != nil {
		st, ok := ParseProjectStatus(*p.Status)
		if !ok {
			return nil, errs.NewInvalidFieldError("status", "must be IN_PROGRESS, COMPLETED or ON_HOLD")
		}
		cols["status"] = st
	}
	if p.ImageURL != nil {
		cols["image_url"] = nullable(*p.ImageURL)
	}
	if p.GithubURL != nil {
		cols["github_url"] = nullable(*p.GithubURL)
	}
	if p.LiveURL != nil {
		cols["live_url"] = nullable(*p.LiveURL)
	}
	if p.Featured != nil {
		cols["featured"] = *p.Featured
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols, nil
}

type BlogPatch struct {
	Title     *string   `json:"title,omitempty"`
	Slug      *string   `json:"slug,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Featured  *bool     `json:"featured,omitempty"`
	Published *bool     `json:"published,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}

func (p BlogPatch) Columns() (map[string]any, error) {
	cols := map[string]any{}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, errs.NewInvalidFieldError("title", "must not be empty")
		}
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		if strings.TrimSpace(*p.Slug) == "" {
			return nil, errs.NewInvalidFieldError("slug", "must not be empty")
		}
		cols["slug"] = *p.Slug
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return nil, errs.NewInvalidFieldError("content", "must not be empty")
		}
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = nullable(*p.Excerpt)
	}
	if p.ImageURL != nil {
		cols["image_url"] = nullable(*p.ImageURL)
	}
	if p.Featured != nil {
		cols["featured"] = *p.Featured
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols, nil
}

// nullable maps an explicit empty string to NULL so optional URLs can be cleared.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
