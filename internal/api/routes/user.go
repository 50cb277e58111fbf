package routes

import (
	"github.com/go-chi/chi/v5"

	"Votocon/internal/api/handlers/user"
	"Votocon/internal/core/users"
)

// RegisterUserRoutes registers account and login endpoints.
// These are public: registering and logging in is how a client gets a token.
func RegisterUserRoutes(r chi.Router, service users.UserService) {
	createHandler := user.NewCreateHandler(service)
	getHandler := user.NewGetHandler(service)
	loginHandler := user.NewLoginHandler(service)

	r.Post("/users", createHandler.HandleCreate)
	r.Get("/users/{id}", getHandler.HandleGet)
	r.Post("/login", loginHandler.HandleLogin)
}
