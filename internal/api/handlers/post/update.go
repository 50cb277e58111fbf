package post

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/api/validation"
	"Votocon/internal/core/posts"
)

// UpdateHandler handles post updates
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// HandleUpdate handles PUT /posts/{id}
// Only fields present in the body are changed.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post id must be an integer")
		return
	}

	var req posts.UpdatePostRequest
	if !handlers.DecodeJSON(w, r, validation.PostUpdate, &req) {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), middleware.GetCaller(r), id, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
