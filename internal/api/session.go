package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/usuarios-console/internal/session"
)

const sessionLocal = "sid"

// SessionCookie describes the cookie carrying the browser's session id.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Middleware makes sure every request carries a server-minted session id and
// exposes it through SessionID. Cookie values NewID could not have produced are
// replaced with a fresh id.
func (s SessionCookie) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(s.Name)
		if !session.ValidID(sid) {
			sid = session.NewID()
			s.Issue(c, sid)
		}
		c.Locals(sessionLocal, sid)
		return c.Next()
	}
}

// Issue sets the session cookie to sid on the response.
func (s SessionCookie) Issue(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionLocal, sid)
}

// SessionID returns the session id bound to the request.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionLocal).(string)
	return sid
}
