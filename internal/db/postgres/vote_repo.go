package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"Votocon/internal/core/votes"
)

// foreignKeyViolation is the Postgres SQLSTATE for foreign_key_violation
const foreignKeyViolation = "23503"

type postgresVoteRepo struct {
	db *sqlx.DB
}

// NewVoteRepository creates a new PostgreSQL vote repository
func NewVoteRepository(db *sqlx.DB) votes.Repository {
	return &postgresVoteRepo{db: db}
}

// Find retrieves a user's vote on a post
func (r *postgresVoteRepo) Find(ctx context.Context, postID, userID int64) (*votes.Vote, error) {
	query := `
		SELECT post_id, user_id, created_at
		FROM votes
		WHERE post_id = $1 AND user_id = $2`

	var vote votes.Vote
	err := r.db.GetContext(ctx, &vote, query, postID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, votes.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// Create inserts a vote.
// ON CONFLICT DO NOTHING returns no row for a duplicate, which is reported as ErrVoteAlreadyExists,
// so two racing inserts end as one success and one conflict.
func (r *postgresVoteRepo) Create(ctx context.Context, postID, userID int64) (*votes.Vote, error) {
	query := `
		INSERT INTO votes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
		RETURNING post_id, user_id, created_at`

	var vote votes.Vote
	err := r.db.GetContext(ctx, &vote, query, postID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, votes.ErrVoteAlreadyExists
	}
	if err != nil {
		// Post deleted between the existence check and the insert
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, votes.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	return &vote, nil
}

// Delete removes a user's vote on a post
func (r *postgresVoteRepo) Delete(ctx context.Context, postID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}

	return rowsAffected > 0, nil
}

// CountByPost returns the number of votes on a post
func (r *postgresVoteRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM votes WHERE post_id = $1`, postID); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// VoteMaintenance runs housekeeping queries used by the prune-votes tool
type VoteMaintenance struct {
	db *sqlx.DB
}

// NewVoteMaintenance creates a VoteMaintenance
func NewVoteMaintenance(db *sqlx.DB) *VoteMaintenance {
	return &VoteMaintenance{db: db}
}

// PostVoteCount is one row of the vote report
type PostVoteCount struct {
	Title  string `db:"title"`
	PostID int64  `db:"post_id"`
	Votes  int    `db:"votes"`
}

const orphanVotesWhere = `
	WHERE NOT EXISTS (SELECT 1 FROM posts p WHERE p.id = v.post_id)
	   OR NOT EXISTS (SELECT 1 FROM users u WHERE u.id = v.user_id)`

// CountOrphans returns the number of votes whose post or voter no longer exists
func (m *VoteMaintenance) CountOrphans(ctx context.Context) (int64, error) {
	var count int64
	if err := m.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM votes v`+orphanVotesWhere); err != nil {
		return 0, fmt.Errorf("failed to count orphan votes: %w", err)
	}
	return count, nil
}

// PruneOrphans deletes votes whose post or voter no longer exists
func (m *VoteMaintenance) PruneOrphans(ctx context.Context) (int64, error) {
	var pruned int64
	err := WithTx(ctx, m.db, "prune orphan votes", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM votes v`+orphanVotesWhere)
		if err != nil {
			return fmt.Errorf("failed to delete orphan votes: %w", err)
		}
		pruned, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}

// TopPosts returns the n posts with the most votes
func (m *VoteMaintenance) TopPosts(ctx context.Context, n int) ([]PostVoteCount, error) {
	query := `
		SELECT p.id AS post_id, p.title, COUNT(v.post_id) AS votes
		FROM posts p
		LEFT JOIN votes v ON v.post_id = p.id
		GROUP BY p.id
		ORDER BY votes DESC, p.id ASC
		LIMIT $1`

	result := []PostVoteCount{}
	if err := m.db.SelectContext(ctx, &result, query, n); err != nil {
		return nil, fmt.Errorf("failed to list top posts: %w", err)
	}
	return result, nil
}
