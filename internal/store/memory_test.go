package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackhub/hackhub/internal/models"
)

func newUser(id, email string) models.User {
	return models.User{
		ID:        id,
		Name:      "Test User",
		Email:     email,
		Password:  "hashed",
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
}

func newProject(id string) models.Project {
	return models.Project{
		ID:          id,
		Title:       "Project " + id,
		Description: "A test project",
		Deadline:    time.Now().Add(24 * time.Hour),
		Status:      models.ProjectOpen,
		Applicants:  []string{},
		Submissions: []models.Submission{},
	}
}

func TestMemStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.InsertUser(ctx, newUser("u1", "alice@example.com")))

	err := s.InsertUser(ctx, newUser("u2", "alice@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemStore_FindUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.InsertUser(ctx, newUser("u1", "alice@example.com")))

	byEmail, err := s.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := s.FindUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemStore_ProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.InsertProject(ctx, newProject("1")))
	require.NoError(t, s.InsertProject(ctx, newProject("2")))

	count, err := s.CountProjects(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	// Insertion order is preserved
	assert.Equal(t, "1", projects[0].ID)
	assert.Equal(t, "2", projects[1].ID)

	_, err = s.GetProject(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestMemStore_ReplaceProjectVersioning(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.InsertProject(ctx, newProject("1")))

	first, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	second, err := s.GetProject(ctx, "1")
	require.NoError(t, err)

	first.Applicants = append(first.Applicants, "u1")
	require.NoError(t, s.ReplaceProject(ctx, first))

	// The second reader still holds the old version and must lose
	second.Applicants = append(second.Applicants, "u2")
	err = s.ReplaceProject(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	current, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, current.Applicants)
	assert.EqualValues(t, 1, current.Version)

	err = s.ReplaceProject(ctx, newProject("missing"))
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestMemStore_GetProjectReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.InsertProject(ctx, newProject("1")))

	project, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	project.Applicants = append(project.Applicants, "intruder")
	project.Title = "mutated"

	stored, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, stored.Applicants)
	assert.Equal(t, "Project 1", stored.Title)
}
