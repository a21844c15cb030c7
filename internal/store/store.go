package store

import (
	"context"
	"errors"

	"github.com/hackhub/hackhub/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrProjectNotFound = errors.New("project not found")
	// ErrVersionConflict is returned when a project write loses a race with a
	// concurrent writer. Callers may re-read and retry.
	ErrVersionConflict = errors.New("project was modified concurrently")
)

// Store is the persistence boundary for users and projects. Submissions are
// embedded in their project and travel with it; there is no independent
// submission record.
type Store interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	InsertProject(ctx context.Context, project models.Project) error
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	// ReplaceProject writes back a project previously obtained from
	// GetProject. The write only succeeds if the stored version still matches
	// the one that was read; otherwise ErrVersionConflict.
	ReplaceProject(ctx context.Context, project models.Project) error
	CountProjects(ctx context.Context) (int64, error)
}
