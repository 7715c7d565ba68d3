package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// APIHandler exposes the session as JSON
type APIHandler struct{}

// NewAPIHandler creates a new API handler
func NewAPIHandler() *APIHandler {
	return &APIHandler{}
}

// State returns the current session snapshot
func (h *APIHandler) State(c *fiber.Ctx) error {
	return c.JSON(sessionFrom(c).Snapshot())
}

// Submit replaces the form with the posted url and ranges, runs the
// submission and returns the resulting snapshot. Backend failures are part
// of the snapshot, not the HTTP status.
func (h *APIHandler) Submit(c *fiber.Ctx) error {
	var req types.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	s := sessionFrom(c)
	s.Replace(req.URL, req.Ranges)
	return c.JSON(s.Submit(c.UserContext()))
}
