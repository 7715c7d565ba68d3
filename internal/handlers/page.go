package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/config"
	"github.com/codebuildervaibhav/segment-scripter/internal/session"
)

// TimePattern is the advisory HH:MM:SS hint placed on time inputs
const TimePattern = "[0-9]{2}:[0-5][0-9]:[0-5][0-9]"

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageHandler renders the transcriber form
type PageHandler struct {
	site config.Site
	now  func() time.Time
}

// NewPageHandler creates a new page handler
func NewPageHandler(site config.Site) *PageHandler {
	return &PageHandler{
		site: site,
		now:  time.Now,
	}
}

type pageData struct {
	Site        config.Site
	Session     session.Snapshot
	TimePattern string
	Year        int
}

// Handle renders the current session state
func (h *PageHandler) Handle(c *fiber.Ctx) error {
	data := pageData{
		Site:        h.site,
		Session:     sessionFrom(c).Snapshot(),
		TimePattern: TimePattern,
		Year:        h.now().Year(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("Failed to render page: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to render page",
			"code":  "ERR_RENDER_FAILED",
		})
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
