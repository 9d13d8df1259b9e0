package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidInput  = errors.New("invalid input")
)

type Repo interface {
	// Create stores a new user and returns ErrUsernameTaken when the username
	// or id is already in use.
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
