package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/emreyozkan/SportConnect/internal/session"
	"github.com/emreyozkan/SportConnect/internal/user"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnauthorized       = errors.New("unauthorized")
)

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Fullname        string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authorize(ctx context.Context, token string) (uuid.UUID, error)
}

type service struct {
	users    user.Repository
	sessions session.Store
}

func NewService(users user.Repository, sessions session.Store) Service {
	return &service{users: users, sessions: sessions}
}

func (s *service) Register(ctx context.Context, input RegisterInput) error {
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate user id: %w", err)
	}

	u := &user.User{
		ID:           newID,
		Email:        input.Email,
		PasswordHash: string(hash),
		Fullname:     input.Fullname,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return user.ErrEmailExists
		}
		log.Error().Err(err).Msg("Failed to create user in repository")
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("Failed to get user by email")
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		log.Error().Err(err).Msg("Failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *service) Authorize(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrUnauthorized
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return uuid.Nil, ErrUnauthorized
		}
		log.Error().Err(err).Msg("Failed to look up session")
		return uuid.Nil, fmt.Errorf("failed to look up session: %w", err)
	}

	return userID, nil
}
