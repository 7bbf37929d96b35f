package api

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/require"
)

const testPassword = "admin123"

// memStore is an in-memory stand-in for the gorm repositories.
type memStore struct {
	mu       sync.Mutex
	projects map[string]*models.Project
	blogs    map[string]*models.Blog
	activity []models.Activity
	seq      int
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[string]*models.Project{},
		blogs:    map[string]*models.Blog{},
	}
}

func (s *memStore) nextID() (string, time.Time) {
	s.seq++
	return "id-" + string(rune('a'+s.seq-1)), time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC)
}

func tagLinks(names []string) []models.ProjectTag {
	links := []models.ProjectTag{}
	for _, name := range database.NormalizeTagNames(names) {
		links = append(links, models.ProjectTag{Tag: models.Tag{ID: "tag-" + name, Name: name}})
	}
	return links
}

func blogTagLinks(names []string) []models.BlogTag {
	links := []models.BlogTag{}
	for _, name := range database.NormalizeTagNames(names) {
		links = append(links, models.BlogTag{Tag: models.Tag{ID: "tag-" + name, Name: name}})
	}
	return links
}

type projectStore struct{ *memStore }

func (s projectStore) FindAll(ctx context.Context, f database.ProjectFilter) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []models.Project{}
	for _, p := range s.projects {
		if (f.Type != "" && p.Type != f.Type) || (f.PublishedOnly && !p.Published) || (f.FeaturedOnly && !p.Featured) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s projectStore) FindByID(ctx context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFound("project")
	}
	return p, nil
}

func (s projectStore) Create(ctx context.Context, p *models.Project, tags []string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID, p.CreatedAt = s.nextID()
	p.Author = &models.Author{ID: p.AuthorID, Name: "Admin User"}
	p.ProjectTags = tagLinks(tags)
	s.projects[p.ID] = p
	s.activity = append(s.activity, models.Activity{EntityType: models.EntityProject, EntityID: p.ID, Title: p.Title, Action: models.ActionCreated})
	return p, nil
}

func (s projectStore) Update(ctx context.Context, id string, cols map[string]any, tags *[]string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFound("project")
	}
	if v, ok := cols["title"].(string); ok {
		p.Title = v
	}
	if v, ok := cols["published"].(bool); ok {
		p.Published = v
	}
	if v, ok := cols["type"].(models.ProjectType); ok {
		p.Type = v
	}
	if tags != nil {
		p.ProjectTags = tagLinks(*tags)
	}
	return p, nil
}

func (s projectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return errs.NewNotFound("project")
	}
	delete(s.projects, id)
	return nil
}

type blogStore struct{ *memStore }

func (s blogStore) FindAll(ctx context.Context, f database.BlogFilter) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Blog{}
	for _, b := range s.blogs {
		if (f.PublishedOnly && !b.Published) || (f.FeaturedOnly && !b.Featured) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s blogStore) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return nil, errs.NewNotFound("blog")
	}
	return b, nil
}

func (s blogStore) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, errs.NewNotFound("blog")
}

func (s blogStore) Create(ctx context.Context, b *models.Blog, tags []string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.blogs {
		if existing.Slug == b.Slug {
			return nil, errs.NewDuplicateSlugError(b.Slug)
		}
	}
	b.ID, b.CreatedAt = s.nextID()
	b.BlogTags = blogTagLinks(tags)
	s.blogs[b.ID] = b
	return b, nil
}

func (s blogStore) Update(ctx context.Context, id string, cols map[string]any, tags *[]string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return nil, errs.NewNotFound("blog")
	}
	if v, ok := cols["slug"].(string); ok {
		for _, other := range s.blogs {
			if other.ID != id && other.Slug == v {
				return nil, errs.NewDuplicateSlugError(v)
			}
		}
		b.Slug = v
	}
	if v, ok := cols["published"].(bool); ok {
		b.Published = v
	}
	return b, nil
}

func (s blogStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[id]; !ok {
		return errs.NewNotFound("blog")
	}
	delete(s.blogs, id)
	return nil
}

type tagStore struct{ *memStore }

func (s tagStore) FindAll(ctx context.Context) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]models.Tag{}
	for _, p := range s.projects {
		for _, link := range p.ProjectTags {
			seen[link.Tag.Name] = link.Tag
		}
	}
	for _, b := range s.blogs {
		for _, link := range b.BlogTags {
			seen[link.Tag.Name] = link.Tag
		}
	}
	out := make([]models.Tag, 0, len(seen))
	for _, tag := range seen {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type statsStore struct{ *memStore }

func (s statsStore) Stats(ctx context.Context) (models.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st models.DashboardStats
	for _, p := range s.projects {
		st.TotalProjects++
		if p.Published {
			st.PublishedProjects++
		}
		switch p.Type {
		case models.ProjectTypeProfessional:
			st.ProfessionalProjects++
		case models.ProjectTypePersonal:
			st.PersonalProjects++
		}
	}
	for _, b := range s.blogs {
		st.TotalBlogs++
		if b.Published {
			st.PublishedBlogs++
		}
	}
	return st, nil
}

type activityStore struct{ *memStore }

func (s activityStore) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Activity{}
	for i := len(s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.activity[i])
	}
	return out, nil
}

type memCache struct {
	mu      sync.Mutex
	gen     int64
	entries map[string][]byte
	// beforeSet runs between a reader's load and its Set.
	beforeSet func()
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Generation(ctx context.Context) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, true
}

func (c *memCache) Get(ctx context.Context, gen int64, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[fmt.Sprintf("%d:%s", gen, key)]
	return b, ok
}

func (c *memCache) Set(ctx context.Context, gen int64, key string, body []byte) {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fmt.Sprintf("%d:%s", gen, key)] = body
}

func (c *memCache) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
}

type fakeUploader struct {
	contentType string
	body        []byte
}

func (u *fakeUploader) Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	u.contentType = contentType
	u.body, _ = io.ReadAll(body)
	return "https://cdn.example.com/uploads/image.png", nil
}

type testEnv struct {
	store    *memStore
	cache    *memCache
	uploader *fakeUploader
	auth     *auth.Authenticator
	deps     Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	authenticator, err := auth.New(auth.Config{AdminPassword: testPassword, JWTSecret: "test-secret"})
	require.NoError(t, err)

	store := newMemStore()
	env := &testEnv{
		store:    store,
		cache:    newMemCache(),
		uploader: &fakeUploader{},
		auth:     authenticator,
	}
	env.deps = Dependencies{
		Projects:   projectStore{store},
		Blogs:      blogStore{store},
		Tags:       tagStore{store},
		Stats:      statsStore{store},
		Activities: activityStore{store},
		Auth:       authenticator,
		Cache:      env.cache,
		Uploader:   env.uploader,
	}
	return env
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := e.auth.IssueToken(testPassword)
	require.NoError(t, err)
	return token
}
