package auth

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	keyAuthenticated = "isAuthenticated"
	keyIDToken       = "idToken"
)

// Session is the authentication state of the current browser
type Session struct {
	IsAuthenticated bool
	Token           string
}

// Sessions keeps the authentication state in fiber's session store
type Sessions struct {
	store    *session.Store
	verifier *Verifier
}

// NewSessions creates a Sessions backed by store
func NewSessions(store *session.Store, verifier *Verifier) *Sessions {
	return &Sessions{store: store, verifier: verifier}
}

// Begin verifies idToken and marks the session authenticated
func (s *Sessions) Begin(c *fiber.Ctx, idToken string) error {
	if _, err := s.verifier.Verify(idToken); err != nil {
		return err
	}

	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// New id on login so a pre-login cookie cannot be reused
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}

	sess.Set(keyAuthenticated, true)
	sess.Set(keyIDToken, idToken)

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the session state. A stored token that no longer verifies
// counts as signed out.
func (s *Sessions) Current(c *fiber.Ctx) (Session, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	ok, _ := sess.Get(keyAuthenticated).(bool)
	token, _ := sess.Get(keyIDToken).(string)
	if !ok || token == "" {
		return Session{}, nil
	}

	if _, err := s.verifier.Verify(token); err != nil {
		return Session{}, nil
	}

	return Session{IsAuthenticated: true, Token: token}, nil
}

// End clears the session
func (s *Sessions) End(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Require only lets authenticated sessions through. Others are sent to
// loginURL with the requested path in the next parameter.
func (s *Sessions) Require(loginURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, err := s.Current(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if current.IsAuthenticated {
			return c.Next()
		}

		target := loginURL + "?next=" + url.QueryEscape(c.OriginalURL())

		if c.Get("HX-Request") == "true" {
			c.Set("HX-Redirect", target)
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Redirect(target, fiber.StatusSeeOther)
	}
}
