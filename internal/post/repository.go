package post

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
}

type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `INSERT INTO posts (id, author_id, content, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, p.ID, p.AuthorID, p.Content, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// ListByAuthor returns the author's posts, newest first.
func (r *repository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	query := `SELECT id, author_id, content, created_at FROM posts
	          WHERE author_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}

	return posts, nil
}
