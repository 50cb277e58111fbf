package posts

import (
	"time"

	"Votocon/internal/core/users"
)

const (
	// DefaultListLimit matches the page size clients get when they omit ?limit
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Post represents a row in the posts table
type Post struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ID        int64     `json:"id" db:"id"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	Published bool      `json:"published" db:"published"`

	// Owner is populated on reads and on the rows returned by create/update
	Owner *users.User `json:"owner,omitempty" db:"owner"`
}

// PostWithVotes pairs a post with the number of votes cast on it.
// Posts with no votes carry a count of 0.
type PostWithVotes struct {
	Post  Post `json:"Post" db:"post"`
	Votes int  `json:"votes" db:"votes"`
}

// CreatePostRequest represents input for creating a new post.
// The owner is never taken from the request; it is always the caller.
type CreatePostRequest struct {
	Published *bool  `json:"published,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// UpdatePostRequest is a partial patch. Nil fields are left untouched.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// IsEmpty reports whether the patch would change nothing
func (r UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Published == nil
}

// ListPostsParams controls search and pagination for ListPosts
type ListPostsParams struct {
	Search string
	Limit  int
	Skip   int
}
