package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/api/dto"
	"github.com/spec-kit/job-tracker/internal/service"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// JobsHandler exposes job postings.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create handles POST /api/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.UserContext(), identity.UserID, req.Fields())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Job created successfully",
		"data":    dto.NewJobResponse(job),
	})
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListOpen(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponses(jobs)})
}

// Get handles GET /api/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return apperrors.NewNotFound("Job", nil)
	}
	job, err := h.jobs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Update handles PUT /api/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return apperrors.NewNotFound("Job", nil)
	}
	var req dto.JobRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Update(c.UserContext(), id, identity.UserID, req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"data":    dto.NewJobResponse(job),
	})
}

// Close handles DELETE /api/jobs/:id. Jobs are closed, never removed.
func (h *JobsHandler) Close(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return apperrors.NewNotFound("Job", nil)
	}

	job, err := h.jobs.Close(c.UserContext(), id, identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Job closed successfully",
		"data":    dto.NewJobResponse(job),
	})
}
