// Package session maps opaque tokens to authenticated user ids. The
// store is injected into whatever needs it; there is no package-level
// state.
package session

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
)

// ErrNotFound is returned by Get when the token is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store issues and resolves session tokens. Implementations must be
// safe for concurrent use. Delete is idempotent: deleting a missing
// token is not an error.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

func newToken() (string, error) {
	token, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return token.String(), nil
}
