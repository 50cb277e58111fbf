package routes

import (
	"github.com/go-chi/chi/v5"

	"Votocon/internal/api/handlers/post"
	"Votocon/internal/api/middleware"
	"Votocon/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints on the router.
// Every post endpoint requires authentication; mutations are further restricted to the owner by the service.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	// Initialize handlers
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Route("/posts", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", listHandler.HandleList)
		r.Post("/", createHandler.HandleCreate)
		r.Get("/{id}", getHandler.HandleGet)
		r.Put("/{id}", updateHandler.HandleUpdate)
		r.Delete("/{id}", deleteHandler.HandleDelete)
	})
}
