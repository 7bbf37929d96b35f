package api

import (
	"context"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

type ProjectStore interface {
	FindAll(ctx context.Context, filter database.ProjectFilter) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project, tags []string) (*models.Project, error)
	Update(ctx context.Context, id string, cols map[string]any, tags *[]string) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type BlogStore interface {
	FindAll(ctx context.Context, filter database.BlogFilter) ([]models.Blog, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Create(ctx context.Context, blog *models.Blog, tags []string) (*models.Blog, error)
	Update(ctx context.Context, id string, cols map[string]any, tags *[]string) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

type TagStore interface {
	FindAll(ctx context.Context) ([]models.Tag, error)
}

type StatsStore interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
}

type ActivityStore interface {
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}

// Authenticator issues admin tokens and verifies them on admin routes.
type Authenticator interface {
	TokenVerifier
	IssueToken(password string) (string, error)
}

// ListCache holds encoded public list responses. Entries are written under
// the generation read before loading, and InvalidateAll starts a new one.
type ListCache interface {
	Generation(ctx context.Context) (int64, bool)
	Get(ctx context.Context, gen int64, key string) ([]byte, bool)
	Set(ctx context.Context, gen int64, key string, body []byte)
	InvalidateAll(ctx context.Context)
}

type ImageUploader interface {
	Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error)
}

// Dependencies wires the router. Cache and Uploader are optional.
type Dependencies struct {
	Projects   ProjectStore
	Blogs      BlogStore
	Tags       TagStore
	Stats      StatsStore
	Activities ActivityStore
	Auth       Authenticator
	Cache      ListCache
	Uploader   ImageUploader
}

// DependenciesFrom builds the stores from a Database.
func DependenciesFrom(db database.Database, authenticator *auth.Authenticator) Dependencies {
	return Dependencies{
		Projects:   db.ProjectRepo(),
		Blogs:      db.BlogRepo(),
		Tags:       db.TagRepo(),
		Stats:      db.DashboardRepo(),
		Activities: db.ActivityRepo(),
		Auth:       authenticator,
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, r router) *routeHandlers {
	listCache := deps.Cache
	if listCache == nil {
		listCache = cache.Nop{}
	}

	handlers := &routeHandlers{
		healthHandler:    newHealthHandler(r.startupTime),
		authHandler:      newAuthHandler(deps.Auth),
		projectHandler:   newProjectHandler(deps.Projects, listCache),
		blogHandler:      newBlogHandler(deps.Blogs, listCache),
		tagHandler:       newTagHandler(deps.Tags),
		dashboardHandler: newDashboardHandler(deps.Stats, deps.Activities),
	}
	if deps.Uploader != nil {
		handlers.uploadHandler = newUploadHandler(deps.Uploader)
	}
	return handlers
}

// cachedList serves key from the cache, or calls load and caches its encoded result.
func cachedList(w http.ResponseWriter, r *http.Request, responder Responder, c ListCache, key string, load func() (any, error)) {
	gen, cacheable := c.Generation(r.Context())
	if cacheable {
		if body, ok := c.Get(r.Context(), gen, key); ok {
			w.Header().Set("X-Cache", "HIT")
			responder.WriteBody(w, http.StatusOK, body)
			return
		}
	}

	data, err := load()
	if err != nil {
		responder.WriteError(w, err)
		return
	}
	body, err := responder.marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if cacheable {
		c.Set(r.Context(), gen, key, body)
	}
	w.Header().Set("X-Cache", "MISS")
	responder.WriteBody(w, http.StatusOK, body)
}
