package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateBio(ctx context.Context, id uuid.UUID, bio string) error
	Suggested(ctx context.Context, excludeID uuid.UUID, limit int) ([]User, error)
	Count(ctx context.Context) (int64, error)
	FriendIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	SentRequestIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
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

const userColumns = `id, email, password_hash, fullname, avatar, bio, created_at`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `INSERT INTO users (id, email, password_hash, fullname, avatar, bio, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Fullname, u.Avatar, u.Bio, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *repository) UpdateBio(ctx context.Context, id uuid.UUID, bio string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET bio = $2 WHERE id = $1`, id, bio)
	if err != nil {
		return fmt.Errorf("failed to update bio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Suggested returns up to limit random users other than excludeID.
func (r *repository) Suggested(ctx context.Context, excludeID uuid.UUID, limit int) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1 ORDER BY random() LIMIT $2`

	rows, err := r.db.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggested users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Fullname, &u.Avatar, &u.Bio, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *repository) FriendIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return r.idList(ctx, `SELECT friend_id FROM friends WHERE user_id = $1`, id)
}

func (r *repository) SentRequestIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return r.idList(ctx, `SELECT receiver_id FROM friend_requests WHERE sender_id = $1`, id)
}

func (r *repository) idList(ctx context.Context, query string, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query id list: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var v uuid.UUID
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read id rows: %w", err)
	}

	return ids, nil
}

func (r *repository) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Fullname, &u.Avatar, &u.Bio, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
