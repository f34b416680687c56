package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/jjenkins/mirrulations/internal/results"
)

const resultsID = "results"

// Search renders the full search page around the results section
func Search(view results.ResultsView) templ.Component {
	return Layout("Search", true, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<section class="search">`)
		h.component(SearchForm(view.SearchTerm, true))
		h.raw(`</section>`)
		h.component(Results(view))

		return h.err
	}))
}

// Results renders the swappable results section: docket entries followed by
// the pagination bar
func Results(view results.ResultsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<section id="`, resultsID, `" class="results`)
		if view.Visible {
			h.raw(` fade-in`)
		}
		h.raw(`">`)

		if view.IsEmpty() {
			if view.SearchTerm != "" {
				h.raw(`<p class="no-results">No dockets match &#34;`)
				h.text(view.SearchTerm)
				h.raw(`&#34;.</p>`)
			}
		} else {
			h.raw(`<ul class="docket-list">`)
			for i := range view.Dockets {
				h.component(docketEntry(&view.Dockets[i]))
			}
			h.raw(`</ul>`)
		}

		h.component(Pagination(view.SearchTerm, view.Pagination))

		if view.ScrollToTop {
			h.raw(`<script>document.getElementById("`, resultsID, `").scrollIntoView({behavior: "smooth", block: "start"});</script>`)
		}

		h.raw(`</section>`)
		return h.err
	})
}

func docketEntry(d *results.DocketView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<li class="docket">`)

		h.raw(`<h2 class="docket-title"><img class="docket-icon"`)
		h.attr("src", d.Icon.Asset)
		h.attr("alt", d.Icon.AltText)
		h.attr("title", d.Icon.Tooltip)
		h.raw(`> <a target="_blank" rel="noopener"`)
		h.attr("href", d.DocketURL)
		h.raw(`>`)
		h.text(d.Title)
		h.raw(`</a></h2>`)

		h.raw(`<p class="docket-meta"><span class="docket-id">`)
		h.text(d.ID)
		h.raw(`</span> <span class="agency">`)
		h.text(d.AgencyName)
		h.raw(`</span>`)
		if d.DateModified != "" {
			h.raw(` <span class="modified">Date Modified: `)
			h.text(d.DateModified)
			h.raw(`</span>`)
		}
		h.raw(`</p>`)

		h.raw(`<dl class="docket-stats">`)
		h.raw(`<dt>`)
		if d.CommentsLink.HasHref() {
			h.raw(`<a target="_blank" rel="noopener"`)
			h.attr("href", d.CommentsLink.Href)
			h.raw(`>`)
			h.text(d.CommentsLink.Label)
			h.raw(`</a>`)
		} else {
			h.text(d.CommentsLink.Label)
		}
		h.raw(`</dt>`)
		stat(h, d.Comments)
		h.raw(`<dt>Comments with Attachments</dt>`)
		stat(h, d.Attachments)
		h.raw(`<dt>Open for Comment</dt><dd>`)
		h.text(d.OpenForComment)
		h.raw(`</dd></dl>`)

		h.raw(`<p class="summary">`)
		h.text(d.Summary)
		h.raw(`</p>`)

		h.component(Timeline(d.Timeline))

		h.raw(`</li>`)
		return h.err
	})
}

func stat(h *htmlWriter, s results.StatLine) {
	if s.HasData {
		h.raw(`<dd>`)
	} else {
		h.raw(`<dd class="none">`)
	}
	h.text(s.Text)
	h.raw(`</dd>`)
}
