package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"Votocon/internal/core/posts"
	"Votocon/internal/core/votes"
)

type postgresPostRepo struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sqlx.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// NewPostChecker returns a votes.PostChecker backed by the posts table
func NewPostChecker(db *sqlx.DB) votes.PostChecker {
	repo := &postgresPostRepo{db: db}
	return votes.PostExistsFunc(repo.PostExists)
}

const postColumns = `id, owner_id, title, content, published, created_at`

// postWithOwnerSelect reads from a relation named p (the table or a CTE) and joins the owner
const postWithOwnerSelect = `
	SELECT
		p.id, p.owner_id, p.title, p.content, p.published, p.created_at,
		u.id AS "owner.id", u.email AS "owner.email", u.created_at AS "owner.created_at"
	FROM p
	JOIN users u ON u.id = p.owner_id`

// postWithVotesSelect aliases post columns as "post.<col>" so sqlx scans them into PostWithVotes.Post.
// LEFT JOIN keeps posts without votes; COUNT(v.post_id) ignores the NULLs they produce.
const postWithVotesSelect = `
	SELECT
		p.id AS "post.id", p.owner_id AS "post.owner_id",
		p.title AS "post.title", p.content AS "post.content",
		p.published AS "post.published", p.created_at AS "post.created_at",
		u.id AS "post.owner.id", u.email AS "post.owner.email", u.created_at AS "post.owner.created_at",
		COUNT(v.post_id) AS votes
	FROM posts p
	JOIN users u ON u.id = p.owner_id
	LEFT JOIN votes v ON v.post_id = p.id`

// List returns posts whose title contains search, with vote counts.
// strpos is used rather than LIKE so % and _ in search match literally.
func (r *postgresPostRepo) List(ctx context.Context, search string, limit, offset int) ([]*posts.PostWithVotes, error) {
	query := postWithVotesSelect + `
		WHERE strpos(p.title, $1) > 0
		GROUP BY p.id, u.id
		ORDER BY p.id ASC
		LIMIT $2 OFFSET $3`

	result := []*posts.PostWithVotes{}
	if err := r.db.SelectContext(ctx, &result, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return result, nil
}

// GetByID retrieves a post with its vote count
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.PostWithVotes, error) {
	query := postWithVotesSelect + `
		WHERE p.id = $1
		GROUP BY p.id, u.id`

	var post posts.PostWithVotes
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// FindByID retrieves the post row without its owner or votes
func (r *postgresPostRepo) FindByID(ctx context.Context, id int64) (*posts.Post, error) {
	var post posts.Post
	err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return &post, nil
}

// PostExists reports whether a post with id exists
func (r *postgresPostRepo) PostExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new post owned by ownerID
func (r *postgresPostRepo) Create(ctx context.Context, ownerID int64, req posts.CreatePostRequest) (*posts.Post, error) {
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	query := `
		WITH p AS (
			INSERT INTO posts (owner_id, title, content, published)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + postColumns + `
		)` + postWithOwnerSelect

	var post posts.Post
	if err := r.db.GetContext(ctx, &post, query, ownerID, req.Title, req.Content, published); err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &post, nil
}

// Update applies the non-nil fields of req in one statement, so no partial update is observable
func (r *postgresPostRepo) Update(ctx context.Context, id int64, req posts.UpdatePostRequest) (*posts.Post, error) {
	query := `
		WITH p AS (
			UPDATE posts
			SET title     = COALESCE($2, title),
			    content   = COALESCE($3, content),
			    published = COALESCE($4, published)
			WHERE id = $1
			RETURNING ` + postColumns + `
		)` + postWithOwnerSelect

	var post posts.Post
	err := r.db.GetContext(ctx, &post, query, id, req.Title, req.Content, req.Published)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &post, nil
}

// Delete removes a post and its votes atomically.
// Votes are deleted explicitly as well as through the FK cascade.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := WithTx(ctx, r.db, "delete post", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete votes for post: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		}
		deleted = rowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
