package routes

import (
	"github.com/go-chi/chi/v5"

	"Votocon/internal/api/handlers/vote"
	"Votocon/internal/api/middleware"
	"Votocon/internal/core/votes"
)

// RegisterVoteRoutes registers the vote endpoint on the router
func RegisterVoteRoutes(r chi.Router, service votes.Service, authMiddleware *middleware.AuthMiddleware) {
	voteHandler := vote.NewVoteHandler(service)

	// dir=1 adds the caller's vote, dir=0 removes it
	r.With(authMiddleware.RequireAuth).Post("/votes", voteHandler.HandleVote)
}
