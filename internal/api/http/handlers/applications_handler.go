package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/api/dto"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/service"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// ApplicationsHandler exposes the application lifecycle.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Apply handles POST /api/applications.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	app, err := h.applications.Apply(c.UserContext(), identity.UserID, service.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Application submitted successfully",
		"data":    dto.NewApplicationResponse(app),
	})
}

// ListMine handles GET /api/applications/my-applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.ListMine(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMyApplicationResponses(apps)})
}

// ListForJob handles GET /api/applications/job/:job_id.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return apperrors.NewForbidden("You can only view applications for your own jobs")
	}
	apps, err := h.applications.ListForJob(c.UserContext(), jobID, identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobApplicationResponses(apps)})
}

// UpdateStatus handles PUT /api/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return apperrors.NewNotFound("Application", nil)
	}

	app, err := h.applications.UpdateStatus(c.UserContext(), id, identity.UserID, service.StatusDecision{
		Status:          domain.ApplicationStatus(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Application status updated successfully",
		"data":    dto.NewApplicationResponse(app),
	})
}
