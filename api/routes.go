package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public read surface and the admin surface
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/projects", handlers.projectHandler.getPublicProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject(true))
		r.Get("/blogs", handlers.blogHandler.getPublicBlogs())
		r.Get("/blogs/{slug}", handlers.blogHandler.getBlogBySlug())
		r.Get("/tags", handlers.tagHandler.getTags())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Post("/blogs", handlers.blogHandler.createBlog())

			r.Route("/admin", func(r chi.Router) {
				r.Get("/dashboard", handlers.dashboardHandler.getDashboard())

				r.Get("/projects", handlers.projectHandler.getAdminProjects())
				r.Post("/projects", handlers.projectHandler.createProject())
				r.Get("/projects/{projectID}", handlers.projectHandler.getProject(false))
				r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

				r.Get("/blogs", handlers.blogHandler.getAdminBlogs())
				r.Post("/blogs", handlers.blogHandler.createBlog())
				r.Get("/blogs/{blogID}", handlers.blogHandler.getBlog())
				r.Put("/blogs/{blogID}", handlers.blogHandler.updateBlog())
				r.Delete("/blogs/{blogID}", handlers.blogHandler.deleteBlog())

				if handlers.uploadHandler != nil {
					r.Post("/uploads", handlers.uploadHandler.uploadImage())
				}
			})
		})
	})
}
