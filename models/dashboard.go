package models

// DashboardStats are the headline counts on the admin dashboard.
type DashboardStats struct {
	TotalProjects        int64 `json:"totalProjects"`
	TotalBlogs           int64 `json:"totalBlogs"`
	PublishedProjects    int64 `json:"publishedProjects"`
	PublishedBlogs       int64 `json:"publishedBlogs"`
	ProfessionalProjects int64 `json:"professionalProjects"`
	PersonalProjects     int64 `json:"personalProjects"`
}

type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	RecentActivity []Activity     `json:"recentActivity"`
}
