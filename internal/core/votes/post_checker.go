package votes

import "context"

// PostChecker reports whether a post exists.
// This prevents creating votes on non-existent content.
type PostChecker interface {
	PostExists(ctx context.Context, postID int64) (bool, error)
}

// PostExistsFunc adapts a plain function to PostChecker
type PostExistsFunc func(ctx context.Context, postID int64) (bool, error)

// PostExists calls f
func (f PostExistsFunc) PostExists(ctx context.Context, postID int64) (bool, error) {
	return f(ctx, postID)
}
