package vote

import (
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/api/middleware"
	"Votocon/internal/api/validation"
	"Votocon/internal/core/votes"
)

// VoteHandler handles adding and removing votes
type VoteHandler struct {
	service votes.Service
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(service votes.Service) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// HandleVote handles POST /votes
//
// Request body: { "post_id": 1, "dir": 1 }  (dir 1 adds the caller's vote, 0 removes it)
func (h *VoteHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	var req votes.VoteRequest
	if !handlers.DecodeJSON(w, r, validation.Vote, &req) {
		return
	}

	response, err := h.service.Vote(r.Context(), middleware.GetCaller(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, response)
}
