package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/session"
)

const (
	sessionCookie = "ss_session"
	localsSession = "session"
)

// SessionMiddleware attaches the visitor's session, creating one and setting
// the cookie when the request carries no known session ID.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, created := store.GetOrCreate(c.Cookies(sessionCookie))
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    s.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localsSession, s)
		return c.Next()
	}
}

func sessionFrom(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(localsSession).(*session.Session)
	return s
}
