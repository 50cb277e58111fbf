package votes

import (
	"context"

	"Votocon/internal/core/users"
)

// Service defines the business logic interface for votes
type Service interface {
	// Vote adds (dir=1) or removes (any other dir) the caller's vote on a post.
	// State per (user, post) is Voted or NotVoted:
	//   - NotVoted + add    -> Voted
	//   - Voted    + add    -> ErrVoteAlreadyExists, unchanged
	//   - Voted    + remove -> NotVoted
	//   - NotVoted + remove -> ErrVoteNotFound, unchanged
	Vote(ctx context.Context, caller users.Caller, req VoteRequest) (*VoteResponse, error)
}

// Repository defines the data access interface for votes
type Repository interface {
	// Find returns the vote for (postID, userID) or ErrVoteNotFound
	Find(ctx context.Context, postID, userID int64) (*Vote, error)

	// Create inserts a vote. A duplicate (including one inserted concurrently)
	// returns ErrVoteAlreadyExists.
	Create(ctx context.Context, postID, userID int64) (*Vote, error)

	// Delete removes the vote. Returns false if there was nothing to delete.
	Delete(ctx context.Context, postID, userID int64) (bool, error)

	// CountByPost returns the number of votes on a post
	CountByPost(ctx context.Context, postID int64) (int, error)
}
