package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"survey-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a regular user. Usernames are unique.
func (s *Service) Register(ctx context.Context, username string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	user := User{
		ID:       "user-" + uuid.NewString(),
		Username: username,
		Role:     RoleUser,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// EnsureDefaultAdmin seeds the admin account if it does not exist yet.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if _, err := s.Repo.GetByID(ctx, DefaultAdminID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	err := s.Repo.Create(ctx, User{ID: DefaultAdminID, Username: username, Role: RoleAdmin})
	if err != nil && !errors.Is(err, ErrUsernameTaken) {
		return err
	}
	if err == nil {
		telemetry.Info("users.admin_seeded", map[string]any{"user_id": DefaultAdminID, "username": username})
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// RoleOf returns the stored role of a user.
func (s *Service) RoleOf(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return string(user.Role), nil
}
