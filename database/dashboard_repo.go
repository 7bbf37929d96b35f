package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) *DashboardRepo {
	return &DashboardRepo{db}
}

// Stats runs the dashboard counts concurrently
func (r *DashboardRepo) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(model any, dst *int64, where ...any) {
		g.Go(func() error {
			q := r.db.WithContext(ctx).Model(model)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			return q.Count(dst).Error
		})
	}

	count(&models.Project{}, &stats.TotalProjects)
	count(&models.Blog{}, &stats.TotalBlogs)
	count(&models.Project{}, &stats.PublishedProjects, "published = ?", true)
	count(&models.Blog{}, &stats.PublishedBlogs, "published = ?", true)
	count(&models.Project{}, &stats.ProfessionalProjects, "type = ?", models.ProjectTypeProfessional)
	count(&models.Project{}, &stats.PersonalProjects, "type = ?", models.ProjectTypePersonal)

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, errs.NewDatabaseError("count", "dashboard stats", err)
	}
	return stats, nil
}
