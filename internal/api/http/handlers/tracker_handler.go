package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/api/dto"
	"github.com/spec-kit/job-tracker/internal/tracker"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// TrackerHandler serves the legacy tracker routes.
type TrackerHandler struct {
	store *tracker.Store
}

// NewTrackerHandler constructs handler around an injected store.
func NewTrackerHandler(store *tracker.Store) *TrackerHandler {
	return &TrackerHandler{store: store}
}

// List handles GET /api/legacy/applications.
func (h *TrackerHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.store.List()})
}

// Create handles POST /api/legacy/applications.
func (h *TrackerHandler) Create(c *fiber.Ctx) error {
	var req dto.TrackerEntryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	entry, err := h.store.Add(tracker.NewEntry{
		Company:     req.Company,
		Position:    req.Position,
		Link:        req.Link,
		AppliedDate: req.AppliedDate,
		Status:      tracker.Status(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		return apperrors.NewValidationError("Invalid status", map[string]any{
			"status": "must be one of applied, interviewing, offer, rejected",
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": entry})
}

// Get handles GET /api/legacy/applications/:id.
func (h *TrackerHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewNotFound("Application", nil)
	}
	entry, ok := h.store.Get(id)
	if !ok {
		return apperrors.NewNotFound("Application", nil)
	}
	return c.JSON(fiber.Map{"data": entry})
}

// Delete handles DELETE /api/legacy/applications/:id.
func (h *TrackerHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewNotFound("Application", nil)
	}
	entry, ok := h.store.Delete(id)
	if !ok {
		return apperrors.NewNotFound("Application", nil)
	}
	return c.JSON(fiber.Map{
		"message": "Application deleted",
		"data":    entry,
	})
}
