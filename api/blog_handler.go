package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     BlogStore
	cache     ListCache
}

func newBlogHandler(blogs BlogStore, cache ListCache) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
		cache:     cache,
	}
}

func blogFilterFromQuery(r *http.Request) (database.BlogFilter, error) {
	q := r.URL.Query()
	filter := database.BlogFilter{
		PublishedOnly: q.Get("published") == "true",
		FeaturedOnly:  q.Get("featured") == "true",
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, errs.NewInvalidFieldError("limit", "must be a positive integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}

// getPublicBlogs lists blogs for the public site
// @Summary List blogs
// @Description Lists blogs newest first, with author, tags and linked projects
// @Tags Blogs
// @Produce json
// @Param published query string false "only published blogs when true"
// @Param featured query string false "only featured blogs when true"
// @Param limit query int false "maximum number of blogs"
// @Success 200 {array} models.Blog
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid limit"
// @Router /blogs [get]
func (h blogHandler) getPublicBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := blogFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		key := "blogs?" + r.URL.Query().Encode()
		cachedList(w, r, h.responder, h.cache, key, func() (any, error) {
			return h.blogs.FindAll(r.Context(), filter)
		})
	}
}

// getAdminBlogs lists every blog for the admin pages, bypassing the cache
// @Summary List blogs (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Blog
// @Router /admin/blogs [get]
func (h blogHandler) getAdminBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := blogFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogs, err := h.blogs.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, blogs)
	}
}

// getBlogBySlug serves the public blog page. Drafts are a 404 here.
// @Summary Get blog by slug
// @Tags Blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} models.Blog
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{slug} [get]
func (h blogHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !blog.Published {
			h.responder.WriteError(w, errs.NewNotFound("blog"))
			return
		}
		h.responder.WriteJSON(w, blog)
	}
}

// getBlog returns any blog, draft or not, for the admin editor
// @Summary Get blog (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param blogID path string true "Blog ID"
// @Success 200 {object} models.Blog
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /admin/blogs/{blogID} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.FindByID(r.Context(), chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, blog)
	}
}

// createBlog creates a blog with its tags
// @Summary Create blog
// @Description The slug is required and must be unique
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blog body models.NewBlog true "Blog data"
// @Success 201 {object} models.Blog
// @Failure 400 {object} ErrorResponse "Bad Request - Missing field or slug already taken"
// @Failure 401 {object} ErrorResponse
// @Router /blogs [post]
// @Router /admin/blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.NewBlog
		if err := decodeJSON(w, r, &in, "blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := in.Blog()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.blogs.Create(r.Context(), blog, in.Tags)
		if err != nil {
			if errs.IsDuplicateSlugError(err) {
				h.logger.Warn().Str("slug", blog.Slug).Msg("Blog slug already taken")
			}
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.logger.Info().Str("blogID", created.ID).Str("slug", created.Slug).Msg("Blog created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateBlog applies a partial update
// @Summary Update blog
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogID path string true "Blog ID"
// @Param blog body models.BlogPatch true "Changed fields"
// @Success 200 {object} models.Blog
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/blogs/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.BlogPatch
		if err := decodeJSON(w, r, &patch, "blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		cols, err := patch.Columns()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(cols) == 0 && patch.Tags == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("no fields to update"))
			return
		}

		updated, err := h.blogs.Update(r.Context(), chi.URLParam(r, "blogID"), cols, patch.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.responder.WriteJSON(w, updated)
	}
}

// deleteBlog deletes a blog by ID
// @Summary Delete blog
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param blogID path string true "Blog ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /admin/blogs/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogID")
		if err := h.blogs.Delete(r.Context(), blogID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.logger.Info().Str("blogID", blogID).Msg("Blog deleted")
		h.responder.WriteJSON(w, MessageResponse{Message: "Blog deleted successfully"})
	}
}
