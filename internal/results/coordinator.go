package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/jjenkins/mirrulations/internal/model"
)

// ErrInvalidPage is returned for negative page requests
var ErrInvalidPage = errors.New("invalid page")

// PageLoader fetches one zero-based page of results for a search term
type PageLoader interface {
	LoadPage(ctx context.Context, page int, term string) (*model.ResultsPage, error)
}

// PageCoordinator forwards page requests from the pagination bar to a loader
type PageCoordinator struct {
	loader  PageLoader
	term    string
	current int
}

// NewPageCoordinator creates a coordinator for term, currently showing page current
func NewPageCoordinator(loader PageLoader, term string, current int) *PageCoordinator {
	return &PageCoordinator{
		loader:  loader,
		term:    term,
		current: current,
	}
}

// Current returns the zero-based page currently displayed
func (c *PageCoordinator) Current() int {
	return c.current
}

// OnPageRequested loads the zero-based page. Requesting the page already shown
// does nothing and returns nil, nil.
func (c *PageCoordinator) OnPageRequested(ctx context.Context, page int) (*model.ResultsPage, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if page == c.current {
		return nil, nil
	}

	results, err := c.loader.LoadPage(ctx, page, c.term)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %d: %w", DisplayLabel(page), err)
	}

	c.current = page
	return results, nil
}

// OnDisplayPageRequested handles a request made with a one-based page label
func (c *PageCoordinator) OnDisplayPageRequested(ctx context.Context, label int) (*model.ResultsPage, error) {
	return c.OnPageRequested(ctx, PageFromLabel(label))
}
