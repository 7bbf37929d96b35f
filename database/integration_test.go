//go:build integration

package database

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm/logger"
)

var testDSN string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("portfolio"),
		postgres.WithPassword("portfolio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Printf("skipping database integration tests: %v\n", err)
		os.Exit(0)
	}

	testDSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("connection string: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	if err := container.Terminate(ctx); err != nil {
		fmt.Printf("terminate container: %v\n", err)
	}
	os.Exit(code)
}

var migrateOnce sync.Once

// newTestDatabase returns a migrated database with every table emptied.
func newTestDatabase(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, Options{DSN: testDSN, LogLevel: logger.Silent})
	require.NoError(t, err)
	d := New(db)

	var migrateErr error
	migrateOnce.Do(func() { migrateErr = d.Migrate(ctx) })
	require.NoError(t, migrateErr)

	require.NoError(t, db.Exec("TRUNCATE project_tags, blog_tags, project_blogs, projects, blogs, tags, users, activities").Error)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return d
}

func newProject(title string, projectType models.ProjectType, published bool) *models.Project {
	return &models.Project{
		Title:       title,
		Description: title + " description",
		Type:        projectType,
		Published:   published,
		AuthorID:    "temp-author-id",
	}
}

func newBlog(title, slug string, published bool) *models.Blog {
	return &models.Blog{
		Title:     title,
		Slug:      slug,
		Content:   title + " content",
		Published: published,
		AuthorID:  "temp-author-id",
	}
}

func countRows(t *testing.T, d Database, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, d.DB().Table(table).Count(&n).Error)
	return n
}

func TestMigrationVersion(t *testing.T) {
	d := newTestDatabase(t)
	version, err := d.MigrationVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestColumnReportMatchesMigrations(t *testing.T) {
	d := newTestDatabase(t)
	report, err := models.FindColumnMismatches(d.DB())
	require.NoError(t, err)
	for _, mismatch := range report {
		assert.True(t, mismatch.Exists, "table %s does not exist", mismatch.Table)
		assert.Empty(t, mismatch.Missing, "table %s is missing columns", mismatch.Table)
	}
}

func TestProjectCreate_LinksDistinctTags(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	project, err := d.ProjectRepo().Create(ctx, newProject("Site", models.ProjectTypePersonal, true), []string{"go", "sql", "go", ""})
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusInProgress, project.Status)
	assert.ElementsMatch(t, []string{"go", "sql"}, project.TagNames())
	require.NotNil(t, project.Author)
	assert.Equal(t, "temp-author-id", project.Author.ID)
	assert.Equal(t, "Admin User", project.Author.Name)
	assert.Equal(t, int64(2), countRows(t, d, "project_tags"))
	assert.Equal(t, int64(2), countRows(t, d, "tags"))

	// Resubmitting the same names reuses the tag rows.
	_, err = d.ProjectRepo().Create(ctx, newProject("Other", models.ProjectTypeProfessional, false), []string{"sql", "go", "web"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), countRows(t, d, "tags"))
	assert.Equal(t, int64(5), countRows(t, d, "project_tags"))
	assert.Equal(t, int64(1), countRows(t, d, "users"))

	var author models.User
	require.NoError(t, d.DB().Take(&author, "id = ?", "temp-author-id").Error)
	assert.Equal(t, models.RoleAdmin, author.Role)

	tags, err := d.TagRepo().FindAll(ctx)
	require.NoError(t, err)
	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"go", "sql", "web"}, names)
}

func TestTagResolve_ConcurrentCreatesConverge(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.ProjectRepo().Create(ctx, newProject(fmt.Sprintf("p%d", i), models.ProjectTypePersonal, true), []string{"shared"})
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), countRows(t, d, "tags"))
	assert.Equal(t, int64(8), countRows(t, d, "project_tags"))
}

func TestProjectFindAll_Filters(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.ProjectRepo()

	_, err := repo.Create(ctx, newProject("personal published", models.ProjectTypePersonal, true), nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newProject("personal draft", models.ProjectTypePersonal, false), nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newProject("pro published", models.ProjectTypeProfessional, true), nil)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "pro published", all[0].Title, "newest first")

	filtered, err := repo.FindAll(ctx, ProjectFilter{Type: models.ProjectTypePersonal, PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "personal published", filtered[0].Title)

	personal, err := repo.FindAll(ctx, ProjectFilter{Type: models.ProjectTypePersonal})
	require.NoError(t, err)
	require.Len(t, personal, 2, "omitting published keeps drafts")
	assert.Equal(t, "personal draft", personal[0].Title)
	assert.Equal(t, "personal published", personal[1].Title)
	for _, p := range personal {
		assert.Equal(t, models.ProjectTypePersonal, p.Type)
	}
}

func TestProjectUpdate(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.ProjectRepo()

	created, err := repo.Create(ctx, newProject("Draft", models.ProjectTypePersonal, false), []string{"go"})
	require.NoError(t, err)

	tags := []string{"rust", "wasm"}
	updated, err := repo.Update(ctx, created.ID, map[string]any{"title": "Shipped", "published": true, "status": models.ProjectStatusCompleted}, &tags)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", updated.Title)
	assert.True(t, updated.Published)
	assert.Equal(t, models.ProjectStatusCompleted, updated.Status)
	assert.ElementsMatch(t, []string{"rust", "wasm"}, updated.TagNames())

	// Omitting tags leaves the links alone.
	updated, err = repo.Update(ctx, created.ID, map[string]any{"featured": true}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rust", "wasm"}, updated.TagNames())

	activity, err := d.ActivityRepo().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, activity, 3)
	actions := []string{activity[0].Action, activity[1].Action, activity[2].Action}
	assert.ElementsMatch(t, []string{models.ActionCreated, models.ActionPublished, models.ActionUpdated}, actions)

	_, err = repo.Update(ctx, "missing", map[string]any{"title": "x"}, nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectDelete(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.ProjectRepo()

	created, err := repo.Create(ctx, newProject("Gone", models.ProjectTypePersonal, true), []string{"go"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	all, err := repo.FindAll(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, int64(0), countRows(t, d, "project_tags"))
	assert.Equal(t, int64(1), countRows(t, d, "tags"))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = repo.FindByID(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogCreate_DuplicateSlug(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.BlogRepo()

	first, err := repo.Create(ctx, newBlog("First", "hello-world", true), []string{"go"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go"}, first.TagNames())

	_, err = repo.Create(ctx, newBlog("Second", "hello-world", true), []string{"new-tag"})
	require.Error(t, err)
	assert.True(t, errs.IsDuplicateSlugError(err))
	assert.Equal(t, 400, errs.StatusCode(err))

	// The failed create left nothing behind.
	assert.Equal(t, int64(1), countRows(t, d, "blogs"))
	assert.Equal(t, int64(1), countRows(t, d, "tags"))
}

func TestBlogCreate_ConcurrentSameSlug(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errCh := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.BlogRepo().Create(ctx, newBlog(fmt.Sprintf("b%d", i), "same-slug", true), nil)
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)

	var succeeded int
	for err := range errCh {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.IsDuplicateSlugError(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), countRows(t, d, "blogs"))
}

func TestBlogFindAllAndSlug(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.BlogRepo()

	for i, published := range []bool{true, false, true} {
		_, err := repo.Create(ctx, newBlog(fmt.Sprintf("Blog %d", i), fmt.Sprintf("blog-%d", i), published), nil)
		require.NoError(t, err)
	}

	published, err := repo.FindAll(ctx, BlogFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, published, 2)

	limited, err := repo.FindAll(ctx, BlogFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "blog-2", limited[0].Slug)

	blog, err := repo.FindBySlug(ctx, "blog-1")
	require.NoError(t, err)
	assert.Equal(t, "Blog 1", blog.Title)

	byID, err := repo.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "blog-1", byID.Slug)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogUpdate_SlugConflict(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	repo := d.BlogRepo()

	_, err := repo.Create(ctx, newBlog("A", "a", true), nil)
	require.NoError(t, err)
	b, err := repo.Create(ctx, newBlog("B", "b", true), nil)
	require.NoError(t, err)

	_, err = repo.Update(ctx, b.ID, map[string]any{"slug": "a"}, nil)
	assert.True(t, errs.IsDuplicateSlugError(err))

	updated, err := repo.Update(ctx, b.ID, map[string]any{"slug": "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Slug)
}

func TestProjectBlogRelations(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	project, err := d.ProjectRepo().Create(ctx, newProject("P", models.ProjectTypeProfessional, true), nil)
	require.NoError(t, err)
	blog, err := d.BlogRepo().Create(ctx, newBlog("B", "b", true), nil)
	require.NoError(t, err)
	require.NoError(t, d.DB().Create(&models.ProjectBlog{ProjectID: project.ID, BlogID: blog.ID}).Error)

	gotProject, err := d.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, gotProject.Blogs, 1)
	require.NotNil(t, gotProject.Blogs[0].Blog)
	assert.Equal(t, "b", gotProject.Blogs[0].Blog.Slug)

	gotBlog, err := d.BlogRepo().FindBySlug(ctx, "b")
	require.NoError(t, err)
	require.Len(t, gotBlog.ProjectBlogs, 1)
	require.NotNil(t, gotBlog.ProjectBlogs[0].Project)
	assert.Equal(t, models.ProjectTypeProfessional, gotBlog.ProjectBlogs[0].Project.Type)

	require.NoError(t, d.BlogRepo().Delete(ctx, blog.ID))
	assert.Equal(t, int64(0), countRows(t, d, "project_blogs"))
}

func TestDashboardStats(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	_, err := d.ProjectRepo().Create(ctx, newProject("a", models.ProjectTypePersonal, true), nil)
	require.NoError(t, err)
	_, err = d.ProjectRepo().Create(ctx, newProject("b", models.ProjectTypeProfessional, false), nil)
	require.NoError(t, err)
	_, err = d.BlogRepo().Create(ctx, newBlog("c", "c", false), nil)
	require.NoError(t, err)

	stats, err := d.DashboardRepo().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalProjects:        2,
		TotalBlogs:           1,
		PublishedProjects:    1,
		PublishedBlogs:       0,
		ProfessionalProjects: 1,
		PersonalProjects:     1,
	}, stats)
}
