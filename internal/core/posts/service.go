package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Votocon/internal/core/users"
)

const (
	maxTitleLength   = 300
	maxContentLength = 40000
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service
func NewPostService(repo Repository) Service {
	return &postService{repo: repo}
}

// ListPosts returns one page of posts matching the title search
func (s *postService) ListPosts(ctx context.Context, caller users.Caller, params ListPostsParams) ([]*PostWithVotes, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if params.Skip < 0 {
		return nil, NewValidationError("skip", "skip must not be negative")
	}

	result, err := s.repo.List(ctx, params.Search, limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

// GetPost returns a post with its vote count
func (s *postService) GetPost(ctx context.Context, caller users.Caller, id int64) (*PostWithVotes, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// CreatePost inserts a post owned by the caller.
// owner_id comes from the resolved caller only, so clients cannot post as someone else.
func (s *postService) CreatePost(ctx context.Context, caller users.Caller, req CreatePostRequest) (*Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, caller.ID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "owner_id", post.OwnerID)
	return post, nil
}

// UpdatePost applies a partial patch after checking ownership
func (s *postService) UpdatePost(ctx context.Context, caller users.Caller, id int64, req UpdatePostRequest) (*Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, NewValidationError("body", "at least one field must be provided")
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Content != nil {
		if err := validateContent(*req.Content); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, req)
}

// DeletePost removes a post after checking ownership
func (s *postService) DeletePost(ctx context.Context, caller users.Caller, id int64) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	// Lost a race with another delete
	if !deleted {
		return ErrNotFound
	}

	slog.Info("post deleted", "post_id", id, "owner_id", caller.ID)
	return nil
}

// authorizeOwner returns ErrNotFound if the post is absent and
// ErrNotAuthorized if the caller is not its owner
func (s *postService) authorizeOwner(ctx context.Context, caller users.Caller, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if post.OwnerID != caller.ID {
		slog.Warn("rejected mutation by non-owner", "post_id", id, "owner_id", post.OwnerID, "caller_id", caller.ID)
		return ErrNotAuthorized
	}
	return nil
}

func requireCaller(caller users.Caller) error {
	if !caller.Authenticated() {
		return users.ErrUnauthenticated
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "title is required")
	}
	if len([]rune(title)) > maxTitleLength {
		return NewValidationError("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "content is required")
	}
	if len([]rune(content)) > maxContentLength {
		return NewValidationError("content", fmt.Sprintf("content must be at most %d characters", maxContentLength))
	}
	return nil
}
