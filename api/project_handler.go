package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  ProjectStore
	cache     ListCache
}

func newProjectHandler(projects ProjectStore, cache ListCache) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		cache:     cache,
	}
}

// projectFilterFromQuery reads type, published and featured. Flags only
// filter when exactly "true"; an unknown type is rejected.
func projectFilterFromQuery(r *http.Request) (database.ProjectFilter, error) {
	q := r.URL.Query()
	filter := database.ProjectFilter{
		PublishedOnly: q.Get("published") == "true",
		FeaturedOnly:  q.Get("featured") == "true",
	}
	if raw := q.Get("type"); raw != "" {
		projectType, ok := models.ParseProjectType(raw)
		if !ok {
			return filter, errs.NewInvalidFieldError("type", "must be PROFESSIONAL or PERSONAL")
		}
		filter.Type = projectType
	}
	return filter, nil
}

// getPublicProjects lists projects for the public site
// @Summary List projects
// @Description Lists projects newest first, with author, tags and linked blogs
// @Tags Projects
// @Produce json
// @Param type query string false "PROFESSIONAL or PERSONAL, any casing"
// @Param published query string false "only published projects when true"
// @Param featured query string false "only featured projects when true"
// @Success 200 {array} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown type"
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		key := "projects?" + r.URL.Query().Encode()
		cachedList(w, r, h.responder, h.cache, key, func() (any, error) {
			return h.projects.FindAll(r.Context(), filter)
		})
	}
}

// getAdminProjects lists every project for the admin pages, bypassing the cache
// @Summary List projects (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Project
// @Failure 401 {object} ErrorResponse
// @Router /admin/projects [get]
func (h projectHandler) getAdminProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projects.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID. The public route only
// serves published projects; drafts are a 404 there.
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
// @Router /admin/projects/{projectID} [get]
func (h projectHandler) getProject(publishedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.FindByID(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if publishedOnly && !project.Published {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a project with its tags
// @Summary Create project
// @Description Creates a project, the author if unknown, and any missing tags in one transaction
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.NewProject true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid field"
// @Failure 401 {object} ErrorResponse
// @Router /projects [post]
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.NewProject
		if err := decodeJSON(w, r, &in, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := in.Project()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.projects.Create(r.Context(), project, in.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.logger.Info().Str("projectID", created.ID).Int("tags", len(created.ProjectTags)).Msg("Project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Only the fields present are changed; tags, when present, replace the tag set
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Param project body models.ProjectPatch true "Changed fields"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch, "project"); err != nil {
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

		updated, err := h.projects.Update(r.Context(), chi.URLParam(r, "projectID"), cols, patch.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.cache.InvalidateAll(r.Context())

		h.logger.Info().Str("projectID", projectID).Msg("Project deleted")
		h.responder.WriteJSON(w, MessageResponse{Message: "Project deleted successfully"})
	}
}
