package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/mirrulations/internal/auth"
)

// SessionHandler signs the browser in with the ID token the identity provider
// posted back
func SessionHandler(sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := sessions.Begin(c, c.FormValue("id_token"))
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid sign-in token")
		}
		if err != nil {
			log.Printf("Error starting session: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error starting session")
		}

		next := c.FormValue("next")
		if !isLocalPath(next) {
			next = "/search"
		}
		return c.Redirect(next, fiber.StatusSeeOther)
	}
}

// LogoutHandler ends the session and returns to the home page
func LogoutHandler(sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := sessions.End(c); err != nil {
			log.Printf("Error ending session: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error ending session")
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

// isLocalPath rejects redirects that would leave the site
func isLocalPath(p string) bool {
	return len(p) > 0 && p[0] == '/' && (len(p) == 1 || (p[1] != '/' && p[1] != '\\'))
}
