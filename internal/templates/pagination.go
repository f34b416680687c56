package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/jjenkins/mirrulations/internal/results"
)

// Pagination renders the first/prev/next/last controls and the numbered page
// buttons. Buttons carry one-based page numbers; current is zero-based.
func Pagination(term string, m results.PaginationControlModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if m.IsEmpty() {
			return nil
		}
		h := newHTMLWriter(ctx, w)

		h.raw(`<nav class="pagination" aria-label="Result pages">`)
		control(h, term, m, m.First, "&laquo;", "First page")
		control(h, term, m, m.Prev, "&lsaquo;", "Previous page")

		for _, p := range m.VisiblePages {
			label := strconv.Itoa(results.DisplayLabel(p))
			if m.IsCurrent(p) {
				h.raw(`<button type="button" class="page active" aria-current="page" disabled>`, label, `</button>`)
				continue
			}
			h.raw(`<button type="button" class="page"`)
			pageTarget(h, term, m.Current, p)
			h.raw(`>`, label, `</button>`)
		}

		control(h, term, m, m.Next, "&rsaquo;", "Next page")
		control(h, term, m, m.Last, "&raquo;", "Last page")
		h.raw(`</nav>`)

		return h.err
	})
}

func control(h *htmlWriter, term string, m results.PaginationControlModel, c results.Control, symbol, label string) {
	h.raw(`<button type="button" class="page-control"`)
	h.attr("aria-label", label)
	if !c.Enabled {
		h.raw(` disabled>`, symbol, `</button>`)
		return
	}
	pageTarget(h, term, m.Current, c.Target)
	h.raw(`>`, symbol, `</button>`)
}

func pageTarget(h *htmlWriter, term string, current, target int) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("page", strconv.Itoa(results.DisplayLabel(target)))
	params.Set("current", strconv.Itoa(current))

	h.attr("hx-get", "/search/page?"+params.Encode())
	h.raw(` hx-target="#`, resultsID, `" hx-swap="outerHTML"`)
}
