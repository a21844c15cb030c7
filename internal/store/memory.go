package store

import (
	"context"
	"sync"

	"github.com/hackhub/hackhub/internal/models"
)

// MemStore is an in-memory Store with the same semantics as MongoStore,
// used for tests and for running the server without a database.
type MemStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	userOrder    []string
	projects     map[string]models.Project
	projectOrder []string
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[string]models.User),
		projects: make(map[string]models.Project),
	}
}

func (s *MemStore) InsertUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *MemStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemStore) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *MemStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *MemStore) InsertProject(_ context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ID]; !exists {
		s.projectOrder = append(s.projectOrder, project.ID)
	}
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *MemStore) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		projects = append(projects, cloneProject(s.projects[id]))
	}
	return projects, nil
}

func (s *MemStore) GetProject(_ context.Context, id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrProjectNotFound
	}
	return cloneProject(project), nil
}

func (s *MemStore) ReplaceProject(_ context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[project.ID]
	if !ok {
		return ErrProjectNotFound
	}
	if current.Version != project.Version {
		return ErrVersionConflict
	}
	next := cloneProject(project)
	next.Version = project.Version + 1
	s.projects[project.ID] = next
	return nil
}

func (s *MemStore) CountProjects(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.projects)), nil
}

// cloneProject deep-copies the slices so callers can't mutate stored state.
func cloneProject(p models.Project) models.Project {
	out := p
	out.Applicants = append([]string(nil), p.Applicants...)
	out.Submissions = make([]models.Submission, len(p.Submissions))
	for i, sub := range p.Submissions {
		c := sub
		c.Links = append([]string(nil), sub.Links...)
		c.Attachments = append([]models.Attachment(nil), sub.Attachments...)
		out.Submissions[i] = c
	}
	return out
}
