package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackhub/hackhub/internal/services"
)

type ProjectHandler struct {
	projects    *services.ProjectService
	attachments *services.AttachmentService
}

func NewProjectHandler(projects *services.ProjectService, attachments *services.AttachmentService) *ProjectHandler {
	return &ProjectHandler{projects: projects, attachments: attachments}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.ListProjects(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) Apply(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string) // Set by auth middleware

	if err := h.projects.Apply(c.Context(), c.Params("id"), userID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully applied to the project"})
}

func (h *ProjectHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var request struct {
		Description string   `json:"description"`
		Links       []string `json:"links"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	submission, err := h.projects.Submit(c.Context(), c.Params("id"), userID, request.Description, request.Links)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Project submitted successfully",
		"submission": submission,
	})
}

// UploadAttachment attaches a multipart file to the caller's submission.
func (h *ProjectHandler) UploadAttachment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	attachment, err := h.attachments.Upload(c, c.Params("id"), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Attachment uploaded successfully",
		"attachment": attachment,
	})
}
