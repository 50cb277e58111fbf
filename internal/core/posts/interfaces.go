package posts

import (
	"context"

	"Votocon/internal/core/users"
)

// Service defines the business logic interface for posts.
// Every operation takes the resolved caller explicitly.
type Service interface {
	// ListPosts returns posts whose title contains params.Search, each with its vote count.
	// Any authenticated caller may list any post.
	ListPosts(ctx context.Context, caller users.Caller, params ListPostsParams) ([]*PostWithVotes, error)

	// GetPost returns a single post with its vote count, or ErrNotFound
	GetPost(ctx context.Context, caller users.Caller, id int64) (*PostWithVotes, error)

	// CreatePost inserts a post owned by the caller
	CreatePost(ctx context.Context, caller users.Caller, req CreatePostRequest) (*Post, error)

	// UpdatePost applies a partial patch. Only the owner may update.
	UpdatePost(ctx context.Context, caller users.Caller, id int64, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post and its votes. Only the owner may delete.
	DeletePost(ctx context.Context, caller users.Caller, id int64) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// List returns posts with vote counts, filtered by title substring, ordered by id
	List(ctx context.Context, search string, limit, offset int) ([]*PostWithVotes, error)

	// GetByID returns a post with its vote count. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*PostWithVotes, error)

	// FindByID returns the bare post row. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id int64) (*Post, error)

	// Create inserts a new post owned by ownerID
	Create(ctx context.Context, ownerID int64, req CreatePostRequest) (*Post, error)

	// Update applies the non-nil fields of req in a single statement.
	// Returns ErrNotFound if the post vanished concurrently.
	Update(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error)

	// Delete removes the post and every vote on it in one transaction.
	// Returns false if no post was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}
