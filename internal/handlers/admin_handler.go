package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hackhub/hackhub/internal/models"
	"github.com/hackhub/hackhub/internal/services"
	"github.com/hackhub/hackhub/internal/store"
)

type AdminHandler struct {
	store       store.Store
	projects    *services.ProjectService
	attachments *services.AttachmentService
}

func NewAdminHandler(st store.Store, projects *services.ProjectService, attachments *services.AttachmentService) *AdminHandler {
	return &AdminHandler{store: st, projects: projects, attachments: attachments}
}

// ListUsers returns all registered users, credentials stripped.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	out := make([]models.User, 0, len(users))
	for _, user := range users {
		out = append(out, user.WithoutPassword())
	}
	return c.JSON(out)
}

// GetUser returns user details by ID.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.store.FindUserByID(c.Context(), c.Params("userid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.WithoutPassword())
}

func (h *AdminHandler) CreateProject(c *fiber.Ctx) error {
	var request struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Deadline    time.Time `json:"deadline"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	project, err := h.projects.CreateProject(c.Context(), request.Title, request.Description, request.Deadline)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Project created successfully",
		"project": project,
	})
}

// Assign adds a user to a project's applicant list, bypassing the closed
// check.
func (h *AdminHandler) Assign(c *fiber.Ctx) error {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&request); err != nil || request.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	// Assigned users must exist
	if _, err := h.store.FindUserByID(c.Context(), request.UserID); err != nil {
		return fail(c, err)
	}

	if err := h.projects.AdminAssign(c.Context(), c.Params("id"), request.UserID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User added to project successfully"})
}

func (h *AdminHandler) Close(c *fiber.Ctx) error {
	if err := h.projects.CloseProject(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project closed"})
}

func (h *AdminHandler) Review(c *fiber.Ctx) error {
	var request struct {
		UserID   string `json:"user_id"`
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.projects.Review(c.Context(), c.Params("id"), request.UserID, request.Status, request.Feedback); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission " + request.Status})
}

func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.projects.AdminOverview(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(overview)
}

// AttachmentURL returns a presigned download link for a submission
// attachment, valid for 10 minutes.
func (h *AdminHandler) AttachmentURL(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name query parameter is required"})
	}

	url, err := h.attachments.PresignedURL(c.Context(), c.Params("id"), c.Params("user_id"), name, 10*time.Minute)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"presigned_url": url,
		"expires_in":    "10 minutes",
	})
}
