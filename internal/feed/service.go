package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/emreyozkan/SportConnect/internal/post"
	"github.com/emreyozkan/SportConnect/internal/user"
)

// ErrEmptyContent rejects posts that are empty after trimming.
var ErrEmptyContent = errors.New("post content cannot be empty")

const (
	suggestedUserCount = 3

	// Placeholder analytics carried over from the showcase feed.
	activeTodayCount    = 10
	mostPopularActivity = "Running"
)

type Service interface {
	Home(ctx context.Context, userID uuid.UUID) (*HomeView, error)
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateBio(ctx context.Context, userID uuid.UUID, bio string) error
	CreatePost(ctx context.Context, userID uuid.UUID, content string) (*post.Post, error)
}

type service struct {
	users user.Repository
	posts post.Repository
}

func NewService(users user.Repository, posts post.Repository) Service {
	return &service{users: users, posts: posts}
}

func (s *service) Home(ctx context.Context, userID uuid.UUID) (*HomeView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to load user for home view")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	suggested, err := s.users.Suggested(ctx, userID, suggestedUserCount)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sample suggested users")
		return nil, fmt.Errorf("failed to sample users: %w", err)
	}

	friendIDs, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	sentIDs, err := s.users.SentRequestIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sent requests: %w", err)
	}

	friends := toIDSet(friendIDs)
	sent := toIDSet(sentIDs)

	suggestedUsers := make([]SuggestedUser, 0, len(suggested))
	for _, other := range suggested {
		suggestedUsers = append(suggestedUsers, SuggestedUser{
			Public:      *other.Public(),
			IsFriend:    friends[other.ID],
			RequestSent: sent[other.ID],
		})
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count users")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &HomeView{
		User:           u.Public(),
		SuggestedUsers: suggestedUsers,
		Analytics: Analytics{
			TotalUsers:          total,
			ActiveToday:         activeTodayCount,
			MostPopularActivity: mostPopularActivity,
		},
		Posts:               samplePosts,
		SuggestedActivities: sampleActivities,
		UpcomingEvents:      sampleEvents,
	}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to load user for profile view")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load posts for profile view")
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	author := u.Public()
	for i := range posts {
		posts[i].Author = author
	}

	return &ProfileView{User: author, Posts: posts}, nil
}

func (s *service) UpdateBio(ctx context.Context, userID uuid.UUID, bio string) error {
	if err := s.users.UpdateBio(ctx, userID, bio); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to update bio")
		return fmt.Errorf("failed to update bio: %w", err)
	}
	return nil
}

func (s *service) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*post.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to load author for new post")
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	newID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post id: %w", err)
	}

	p := &post.Post{
		ID:        newID,
		Content:   content,
		AuthorID:  userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.Create(ctx, p); err != nil {
		log.Error().Err(err).Msg("Failed to create post")
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	p.Author = author.Public()
	return p, nil
}

func toIDSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
