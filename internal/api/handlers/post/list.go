package post

import (
	"net/http"
	"strconv"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/core/posts"
)

// ListHandler handles post listing and search
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /posts?limit=&skip=&search=
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, ok := parseListParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListPosts(r.Context(), middleware.GetCaller(r), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// parseListParams reads limit, skip and search from the query string.
// Missing values fall through to the service defaults.
func parseListParams(w http.ResponseWriter, r *http.Request) (posts.ListPostsParams, bool) {
	query := r.URL.Query()
	params := posts.ListPostsParams{Search: query.Get("search")}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be an integer")
			return params, false
		}
		params.Limit = limit
	}

	if v := query.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "skip must be an integer")
			return params, false
		}
		params.Skip = skip
	}

	return params, true
}
