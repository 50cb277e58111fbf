package vote

import (
	"errors"
	"log"
	"net/http"

	"Votocon/internal/api/handlers"
	"Votocon/internal/core/users"
	"Votocon/internal/core/votes"
)

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrUnauthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
	case errors.Is(err, votes.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, votes.ErrVoteNotFound):
		handlers.WriteError(w, http.StatusNotFound, "VoteNotFound", "Vote does not exist")
	case errors.Is(err, votes.ErrVoteAlreadyExists):
		handlers.WriteError(w, http.StatusConflict, "VoteAlreadyExists", "User has already voted on this post")
	default:
		// Internal server error - log the actual error for debugging
		log.Printf("Vote handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
