package post

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /posts/{id}
// Only the post's owner can delete it; votes on the post go with it.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post id must be an integer")
		return
	}

	if err := h.service.DeletePost(r.Context(), middleware.GetCaller(r), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
