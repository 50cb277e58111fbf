package user

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/validation"
	"Votocon/internal/core/users"
)

// CreateHandler handles account registration
type CreateHandler struct {
	userService users.UserService
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(userService users.UserService) *CreateHandler {
	return &CreateHandler{userService: userService}
}

// HandleCreate handles POST /users
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req users.CreateUserRequest
	if !handlers.DecodeJSON(w, r, validation.UserCreate, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, user)
}
