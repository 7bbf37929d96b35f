package listview

import "github.com/rpupo63/portfolio-backend/models"

// Filter keys understood by the project and blog rows.
const (
	FilterType   = "type"
	FilterStatus = "status"

	StatusPublished = "published"
	StatusDraft     = "draft"
)

type ProjectItem struct {
	models.Project
}

func (p ProjectItem) ItemID() string { return p.ID }

func (p ProjectItem) SearchText() []string { return []string{p.Title, p.Description} }

func (p ProjectItem) FilterValue(key string) string {
	switch key {
	case FilterType:
		return string(p.Type)
	case FilterStatus:
		return string(p.Status)
	}
	return ""
}

type BlogItem struct {
	models.Blog
}

func (b BlogItem) ItemID() string { return b.ID }

func (b BlogItem) SearchText() []string { return []string{b.Title, b.Content} }

// FilterValue maps the status filter to published or draft.
func (b BlogItem) FilterValue(key string) string {
	if key != FilterStatus {
		return ""
	}
	if b.Published {
		return StatusPublished
	}
	return StatusDraft
}

func ProjectItems(projects []models.Project) []ProjectItem {
	items := make([]ProjectItem, len(projects))
	for i, p := range projects {
		items[i] = ProjectItem{p}
	}
	return items
}

func BlogItems(blogs []models.Blog) []BlogItem {
	items := make([]BlogItem, len(blogs))
	for i, b := range blogs {
		items[i] = BlogItem{b}
	}
	return items
}
