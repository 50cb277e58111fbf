package votes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Votocon/internal/core/users"
)

type voteService struct {
	repo  Repository
	posts PostChecker
}

// NewVoteService creates a new vote service
func NewVoteService(repo Repository, posts PostChecker) Service {
	return &voteService{
		repo:  repo,
		posts: posts,
	}
}

// Vote adds or removes the caller's vote on a post
func (s *voteService) Vote(ctx context.Context, caller users.Caller, req VoteRequest) (*VoteResponse, error) {
	if !caller.Authenticated() {
		return nil, users.ErrUnauthenticated
	}

	// 1. The post must exist
	exists, err := s.posts.PostExists(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	// 2. Look up current state for (post, caller)
	existing, err := s.repo.Find(ctx, req.PostID, caller.ID)
	if err != nil && !errors.Is(err, ErrVoteNotFound) {
		return nil, fmt.Errorf("failed to get existing vote: %w", err)
	}
	voted := existing != nil

	// 3. Transition
	if req.Dir == DirectionUp {
		if voted {
			return nil, ErrVoteAlreadyExists
		}
		// The unique key still guards against a concurrent insert slipping in between
		if _, err := s.repo.Create(ctx, req.PostID, caller.ID); err != nil {
			if errors.Is(err, ErrVoteAlreadyExists) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to create vote: %w", err)
		}

		slog.Info("vote added", "post_id", req.PostID, "user_id", caller.ID)
		return &VoteResponse{Message: "successfully added vote", Added: true}, nil
	}

	if !voted {
		return nil, ErrVoteNotFound
	}

	deleted, err := s.repo.Delete(ctx, req.PostID, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete vote: %w", err)
	}
	if !deleted {
		return nil, ErrVoteNotFound
	}

	slog.Info("vote removed", "post_id", req.PostID, "user_id", caller.ID)
	return &VoteResponse{Message: "successfully deleted vote"}, nil
}
