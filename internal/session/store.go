package session

import (
	"context"
	"errors"

	"hospital-gin/internal/models"
)

// ErrSessionNotFound is returned by a Store when no live session has the id.
var ErrSessionNotFound = errors.New("session not found")

// Store persists server-side session state.
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	Load(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteUser drops every session of the user.
	DeleteUser(ctx context.Context, userID uint) error
}
