package handlers

import (
	"errors"
	"log"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/mirrulations/internal/results"
	"github.com/jjenkins/mirrulations/internal/templates"
)

// SearchHandler renders the page of dockets matching q. The page query
// parameter is one-based.
func SearchHandler(loader results.PageLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := c.Query("q")

		label := c.QueryInt("page", 1)
		if label < 1 {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid page number")
		}

		page, err := loader.LoadPage(c.UserContext(), results.PageFromLabel(label), term)
		if err != nil {
			log.Printf("Error loading results for %q: %v", term, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading results")
		}

		view := results.NewPresenter().Present(page, term)
		return renderResults(c, view)
	}
}

// PageHandler serves the pagination buttons. page is the one-based page asked
// for and current the zero-based page on screen; asking for the page already
// shown answers 204 so the results stay untouched.
func PageHandler(loader results.PageLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := c.Query("q")
		label := c.QueryInt("page", 0)
		current := c.QueryInt("current", -1)

		coordinator := results.NewPageCoordinator(loader, term, current)

		page, err := coordinator.OnDisplayPageRequested(c.UserContext(), label)
		if errors.Is(err, results.ErrInvalidPage) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid page number")
		}
		if err != nil {
			log.Printf("Error changing page for %q: %v", term, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading results")
		}
		if page == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}

		view := results.NewPresenter().Present(page, term)
		return renderResults(c, view)
	}
}

// renderResults sends only the results section to HTMX and the whole page to
// everyone else
func renderResults(c *fiber.Ctx, view results.ResultsView) error {
	if c.Get("HX-Request") == "true" {
		handler := adaptor.HTTPHandler(templ.Handler(templates.Results(view)))
		return handler(c)
	}

	handler := adaptor.HTTPHandler(templ.Handler(templates.Search(view)))
	return handler(c)
}
