package post

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/core/posts"
)

// GetHandler handles single post reads
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post id must be an integer")
		return
	}

	post, err := h.service.GetPost(r.Context(), middleware.GetCaller(r), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
