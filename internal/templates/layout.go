package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the page shell shared by every full page
func Layout(title string, signedIn bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | Mirrulations</title>`)
		h.raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		h.raw(`<script src="`, htmxScript, `"></script></head><body>`)

		h.raw(`<header class="site-header"><a class="brand" href="/">Mirrulations</a><nav>`)
		if signedIn {
			h.raw(`<a href="/search">Search</a>`)
			h.raw(`<form method="post" action="/logout" class="logout"><button type="submit">Sign out</button></form>`)
		}
		h.raw(`</nav></header><main>`)
		h.component(body)
		h.raw(`</main></body></html>`)

		return h.err
	})
}
