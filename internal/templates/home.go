package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HomeMetrics holds the index statistics shown on the home page
type HomeMetrics struct {
	TotalDockets   int
	TotalComments  int
	TotalAgencies  int
	OpenForComment int
	TopAgency      string
	HasData        bool
}

// Home renders the landing page
func Home(metrics HomeMetrics, signedIn bool) templ.Component {
	return Layout("Home", signedIn, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<section class="hero"><h1>Search federal rulemaking dockets</h1>`)
		h.raw(`<p>Find dockets and public comments collected from regulations.gov.</p>`)
		h.component(SearchForm("", false))
		h.raw(`</section>`)

		h.raw(`<section class="metrics">`)
		if !metrics.HasData {
			h.raw(`<p class="no-data">No dockets have been imported yet. Run <code>mirrulations import</code> to load data.</p>`)
		} else {
			metric(h, "Dockets", strconv.Itoa(metrics.TotalDockets))
			metric(h, "Comments", strconv.Itoa(metrics.TotalComments))
			metric(h, "Agencies", strconv.Itoa(metrics.TotalAgencies))
			metric(h, "Open for comment", strconv.Itoa(metrics.OpenForComment))
			if metrics.TopAgency != "" {
				metric(h, "Most active agency", metrics.TopAgency)
			}
		}
		h.raw(`</section>`)

		return h.err
	}))
}

func metric(h *htmlWriter, label, value string) {
	h.raw(`<div class="metric"><span class="metric-value">`)
	h.text(value)
	h.raw(`</span><span class="metric-label">`)
	h.text(label)
	h.raw(`</span></div>`)
}

// SearchForm renders the search box, prefilled with term. With swap set the
// form replaces the results section in place instead of loading a new page.
func SearchForm(term string, swap bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<form class="search-form" method="get" action="/search"`)
		if swap {
			h.raw(` hx-get="/search" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"`)
		}
		h.raw(`>`)
		h.raw(`<label for="q" class="visually-hidden">Search term</label>`)
		h.raw(`<input type="search" id="q" name="q" placeholder="Search dockets and comments"`)
		h.attr("value", term)
		h.raw(`><button type="submit">Search</button></form>`)

		return h.err
	})
}
