package votes

import "errors"

var (
	// ErrVoteNotFound indicates the caller has no vote on the post
	ErrVoteNotFound = errors.New("vote does not exist")

	// ErrPostNotFound indicates the post being voted on doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrVoteAlreadyExists indicates the caller already voted on this post
	ErrVoteAlreadyExists = errors.New("vote already exists")
)
