package post

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/api/validation"
	"Votocon/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /posts
// The owner is always the authenticated caller; any owner_id in the body is ignored.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if !handlers.DecodeJSON(w, r, validation.PostCreate, &req) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), middleware.GetCaller(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post)
}
