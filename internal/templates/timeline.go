package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

const timelineLayout = "Jan 2, 2006"

// Timeline renders the dates on which documents were posted to a docket
func Timeline(dates []time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(dates) == 0 {
			return nil
		}
		h := newHTMLWriter(ctx, w)

		h.raw(`<ol class="timeline">`)
		for _, d := range dates {
			h.raw(`<li><time`)
			h.attr("datetime", d.Format(time.DateOnly))
			h.raw(`>`)
			h.text(d.Format(timelineLayout))
			h.raw(`</time></li>`)
		}
		h.raw(`</ol>`)

		return h.err
	})
}
