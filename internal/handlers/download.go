package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/export"
)

// DownloadHandler serves the current results as a transcript file
type DownloadHandler struct{}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{}
}

// Handle processes GET /download/:format. Without results there is nothing
// to export and the visitor is sent back to the page.
func (h *DownloadHandler) Handle(c *fiber.Ctx) error {
	format := c.Params("format")
	if !export.Supported(format) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Unsupported export format",
			"code":  "ERR_INVALID_FORMAT",
		})
	}

	snap := sessionFrom(c).Snapshot()
	if len(snap.Results) == 0 {
		return backToPage(c)
	}

	file, err := export.Build(snap.Results, format)
	if err != nil {
		log.Printf("Failed to build %s export: %v", format, err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to build export",
			"code":  "ERR_EXPORT_FAILED",
		})
	}

	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Body)
}
