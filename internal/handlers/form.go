package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/codebuildervaibhav/segment-scripter/internal/session"
	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// FormHandler applies form edits posted by the page. Every action first
// copies the posted field values into the session so nothing typed is lost,
// then redirects back to the page.
type FormHandler struct{}

// NewFormHandler creates a new form handler
func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

// SetURL handles POST /url
func (h *FormHandler) SetURL(c *fiber.Ctx) error {
	applyPostedFields(c, sessionFrom(c))
	return backToPage(c)
}

// AddRange handles POST /ranges
func (h *FormHandler) AddRange(c *fiber.Ctx) error {
	s := sessionFrom(c)
	applyPostedFields(c, s)
	s.AddRange()
	return backToPage(c)
}

// RemoveRange handles POST /ranges/:id/delete
func (h *FormHandler) RemoveRange(c *fiber.Ctx) error {
	s := sessionFrom(c)
	applyPostedFields(c, s)
	s.RemoveRange(c.Params("id"))
	return backToPage(c)
}

// UpdateRange handles POST /ranges/:id with form fields "field" and "value"
func (h *FormHandler) UpdateRange(c *fiber.Ctx) error {
	s := sessionFrom(c)
	field := c.FormValue("field")
	if field != types.FieldStart && field != types.FieldEnd {
		return c.Status(400).JSON(fiber.Map{
			"error": "field must be start or end",
			"code":  "ERR_INVALID_FIELD",
		})
	}
	// FormValue aliases the request buffer, which fasthttp reuses
	snap := s.UpdateRange(c.Params("id"), field, utils.CopyString(c.FormValue("value")))
	if wantsJSON(c) {
		return c.JSON(snap)
	}
	return backToPage(c)
}

// Submit handles POST /submit. The request blocks until the backend answers.
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	s := sessionFrom(c)
	applyPostedFields(c, s)
	s.Submit(c.UserContext())
	return backToPage(c)
}

// applyPostedFields copies url, start_<id> and end_<id> values that are
// present in the request body. Absent fields are left unchanged.
func applyPostedFields(c *fiber.Ctx, s *session.Session) {
	args := c.Request().PostArgs()
	if args.Has("url") {
		s.SetURL(string(args.Peek("url")))
	}
	for _, r := range s.Snapshot().Ranges {
		if key := "start_" + r.ID; args.Has(key) {
			s.UpdateRange(r.ID, types.FieldStart, string(args.Peek(key)))
		}
		if key := "end_" + r.ID; args.Has(key) {
			s.UpdateRange(r.ID, types.FieldEnd, string(args.Peek(key)))
		}
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func backToPage(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}
