package votes

import (
	"time"
)

// Direction is the intent of a vote request: 1 adds the caller's vote, anything else removes it
type Direction int

const (
	DirectionDown Direction = 0
	DirectionUp   Direction = 1
)

// Vote marks that a user has voted on a post. There is no stored downvote.
type Vote struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	PostID    int64     `json:"post_id" db:"post_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
}

// VoteRequest represents input for casting or removing a vote
type VoteRequest struct {
	PostID int64     `json:"post_id"`
	Dir    Direction `json:"dir"`
}

// VoteResponse reports which transition happened
type VoteResponse struct {
	Message string `json:"message"`
	Added   bool   `json:"-"`
}
