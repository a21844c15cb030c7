package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hackhub/hackhub/internal/logging"
	"github.com/hackhub/hackhub/internal/models"
	"github.com/hackhub/hackhub/internal/store"
	"github.com/hackhub/hackhub/internal/utils"
)

var (
	ErrProjectClosed      = errors.New("project is no longer accepting applications")
	ErrAlreadyApplied     = errors.New("user has already applied to this project")
	ErrAlreadySubmitted   = errors.New("user has already submitted to this project")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEmptyDescription   = errors.New("submission description is required")
	ErrInvalidReview      = errors.New("review status must be approved or rejected")
	ErrInvalidProject     = errors.New("project title and description are required")
	ErrPastDeadline       = errors.New("project deadline must be in the future")
)

// ProjectService implements the project and submission lifecycle.
type ProjectService struct {
	store store.Store
}

func NewProjectService(st store.Store) *ProjectService {
	return &ProjectService{store: st}
}

// EnsureSeedData inserts the demo projects on first start, when the projects
// collection is empty.
func (s *ProjectService) EnsureSeedData(ctx context.Context) error {
	count, err := s.store.CountProjects(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []models.Project{
		{
			ID:          "1",
			Title:       "AI-Powered Task Management",
			Description: "Build a task management application that uses AI to prioritize and categorize tasks based on user behavior and deadlines.",
			Deadline:    time.Now().Add(7 * 24 * time.Hour),
		},
		{
			ID:          "2",
			Title:       "Real-time Collaborative Code Editor",
			Description: "Create a web-based code editor that allows multiple users to edit code simultaneously with syntax highlighting and version control.",
			Deadline:    time.Now().Add(5 * 24 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "NFT Marketplace with Social Features",
			Description: "Develop an NFT marketplace that includes social features like following creators, commenting on NFTs, and sharing collections.",
			Deadline:    time.Now().Add(10 * 24 * time.Hour),
		},
	}

	for _, project := range seed {
		project.Status = models.ProjectOpen
		project.Applicants = []string{}
		project.Submissions = []models.Submission{}
		if err := s.store.InsertProject(ctx, project); err != nil {
			return err
		}
	}

	logging.Logger.Infof("Seeded %d demo projects", len(seed))
	return nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (models.Project, error) {
	return s.store.GetProject(ctx, id)
}

// Apply records the user's interest in an open project.
func (s *ProjectService) Apply(ctx context.Context, projectID, userID string) error {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectClosed {
		return ErrProjectClosed
	}
	if project.HasApplicant(userID) {
		return ErrAlreadyApplied
	}

	project.Applicants = append(project.Applicants, userID)
	if err := s.store.ReplaceProject(ctx, project); err != nil {
		return err
	}

	logging.Logger.Infof("User %s applied to project %s", userID, projectID)
	return nil
}

// Submit records the user's work against a project. The description is
// required, blank link entries are dropped, and each user gets exactly one
// submission per project.
func (s *ProjectService) Submit(ctx context.Context, projectID, userID, description string, links []string) (models.Submission, error) {
	if strings.TrimSpace(description) == "" {
		return models.Submission{}, ErrEmptyDescription
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return models.Submission{}, err
	}
	if project.SubmissionIndex(userID) >= 0 {
		return models.Submission{}, ErrAlreadySubmitted
	}

	filtered := make([]string, 0, len(links))
	for _, link := range links {
		if trimmed := strings.TrimSpace(link); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}

	submission := models.Submission{
		UserID:      userID,
		ProjectID:   projectID,
		Description: description,
		Links:       filtered,
		SubmittedAt: time.Now(),
		Status:      models.SubmissionPending,
	}

	project.Submissions = append(project.Submissions, submission)
	if err := s.store.ReplaceProject(ctx, project); err != nil {
		return models.Submission{}, err
	}

	logging.Logger.Infof("User %s submitted to project %s", userID, projectID)
	return submission, nil
}

// Review sets the status of the user's submission and, when feedback is
// non-empty, the feedback text. Status transitions are deliberately
// unconstrained; an approved submission can still be rejected later.
func (s *ProjectService) Review(ctx context.Context, projectID, userID, status, feedback string) error {
	if status != models.SubmissionApproved && status != models.SubmissionRejected {
		return ErrInvalidReview
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	idx := project.SubmissionIndex(userID)
	if idx < 0 {
		return ErrSubmissionNotFound
	}

	project.Submissions[idx].Status = status
	if feedback != "" {
		project.Submissions[idx].Feedback = feedback
	}

	if err := s.store.ReplaceProject(ctx, project); err != nil {
		return err
	}

	logging.Logger.Infof("Submission by %s on project %s reviewed as %s", userID, projectID, status)
	return nil
}

// AdminAssign adds a user to a project's applicant list, bypassing the
// closed check. This is the admin override for manual placement.
func (s *ProjectService) AdminAssign(ctx context.Context, projectID, userID string) error {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.HasApplicant(userID) {
		return ErrAlreadyApplied
	}

	project.Applicants = append(project.Applicants, userID)
	if err := s.store.ReplaceProject(ctx, project); err != nil {
		return err
	}

	logging.Logger.Infof("Admin assigned user %s to project %s", userID, projectID)
	return nil
}

// CloseProject transitions a project from open to closed. New applications
// are rejected afterwards; admin assignment still works.
func (s *ProjectService) CloseProject(ctx context.Context, projectID string) error {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectClosed {
		return ErrProjectClosed
	}

	project.Status = models.ProjectClosed
	if err := s.store.ReplaceProject(ctx, project); err != nil {
		return err
	}

	logging.Logger.Infof("Project %s closed", projectID)
	return nil
}

// CreateProject adds a new open project beyond the seeded ones.
func (s *ProjectService) CreateProject(ctx context.Context, title, description string, deadline time.Time) (models.Project, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return models.Project{}, ErrInvalidProject
	}
	if deadline.Before(time.Now()) {
		return models.Project{}, ErrPastDeadline
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Status:      models.ProjectOpen,
		Applicants:  []string{},
		Submissions: []models.Submission{},
	}

	if err := s.store.InsertProject(ctx, project); err != nil {
		return models.Project{}, err
	}

	logging.Logger.Infof("Created project %s (%s)", project.Title, project.ID)
	return project, nil
}

// ProjectStats is the per-project slice of the admin overview.
type ProjectStats struct {
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Applicants  int    `json:"applicants"`
	Submissions int    `json:"submissions"`
	Pending     int    `json:"pending"`
}

// Overview aggregates counts across all projects and users.
type Overview struct {
	Projects         []ProjectStats `json:"projects"`
	TotalUsers       int            `json:"totalUsers"`
	TotalApplicants  int            `json:"totalApplicants"`
	TotalSubmissions int            `json:"totalSubmissions"`
	PendingReviews   int            `json:"pendingReviews"`
}

// AdminOverview fetches users and projects concurrently and reduces them to
// dashboard counters.
func (s *ProjectService) AdminOverview(ctx context.Context) (Overview, error) {
	var (
		projects []models.Project
		users    []models.User
	)

	err := utils.Parallel(
		func() error {
			var err error
			projects, err = s.store.ListProjects(ctx)
			return err
		},
		func() error {
			var err error
			users, err = s.store.ListUsers(ctx)
			return err
		},
	)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Projects:   make([]ProjectStats, 0, len(projects)),
		TotalUsers: len(users),
	}
	for _, project := range projects {
		stats := ProjectStats{
			ProjectID:   project.ID,
			Title:       project.Title,
			Status:      project.Status,
			Applicants:  len(project.Applicants),
			Submissions: len(project.Submissions),
		}
		for _, sub := range project.Submissions {
			if sub.Status == models.SubmissionPending {
				stats.Pending++
			}
		}
		overview.TotalApplicants += stats.Applicants
		overview.TotalSubmissions += stats.Submissions
		overview.PendingReviews += stats.Pending
		overview.Projects = append(overview.Projects, stats)
	}

	return overview, nil
}
