package user

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/core/users"
)

// GetHandler handles user profile reads
type GetHandler struct {
	userService users.UserService
}

// NewGetHandler creates a new get handler
func NewGetHandler(userService users.UserService) *GetHandler {
	return &GetHandler{userService: userService}
}

// HandleGet handles GET /users/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "user id must be an integer")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, user)
}
