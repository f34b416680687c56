package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/jjenkins/mirrulations/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleView() results.ResultsView {
	return results.ResultsView{
		SearchTerm: "clean air",
		Dockets: []results.DocketView{{
			ID:             "EPA-HQ-OAR-2021-0317",
			Title:          "Methane <Rule>",
			AgencyName:     "EPA",
			DocketURL:      results.DocketURL("EPA-HQ-OAR-2021-0317"),
			Comments:       results.StatLine{Text: "5/10 (50.00%)", HasData: true},
			CommentsLink:   results.BuildCommentsLink("EPA-HQ-OAR-2021-0317", "clean air", 10),
			Attachments:    results.StatLine{Text: results.NoAttachmentsLabel},
			Summary:        "Reduces methane",
			Timeline:       []time.Time{time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC)},
			OpenForComment: "Yes",
			Icon:           results.Icon{Asset: "/static/icons/hammer.svg", AltText: "Rulemaking icon", Tooltip: "Rulemaking"},
			DateModified:   "Mar 1, 2024",
		}},
		Pagination:  results.ComputeWindow(0, 3, results.DefaultMaxVisible),
		Visible:     true,
		ScrollToTop: true,
	}
}

func TestResults_RendersDocket(t *testing.T) {
	t.Parallel()

	out := render(t, Results(sampleView()))

	assert.Contains(t, out, `<section id="results" class="results fade-in">`)
	assert.Contains(t, out, "Methane &lt;Rule&gt;")
	assert.Contains(t, out, `href="https://www.regulations.gov/docket/EPA-HQ-OAR-2021-0317"`)
	assert.Contains(t, out, `href="https://www.regulations.gov/docket/EPA-HQ-OAR-2021-0317/comments?filter=clean+air"`)
	assert.Contains(t, out, "5/10 (50.00%)")
	assert.Contains(t, out, `<dd class="none">`+results.NoAttachmentsLabel+`</dd>`)
	assert.Contains(t, out, `alt="Rulemaking icon"`)
	assert.Contains(t, out, "Date Modified: Mar 1, 2024")
	assert.Contains(t, out, `<time datetime="2021-11-15">Nov 15, 2021</time>`)
	assert.Contains(t, out, "scrollIntoView")
}

func TestResults_Empty(t *testing.T) {
	t.Parallel()

	out := render(t, Results(results.ResultsView{SearchTerm: "nothing"}))

	assert.Contains(t, out, `<section id="results" class="results">`)
	assert.Contains(t, out, "No dockets match &#34;nothing&#34;.")
	assert.NotContains(t, out, "scrollIntoView")
	assert.NotContains(t, out, "pagination")
}

func TestResults_CommentsLabelWithoutLink(t *testing.T) {
	t.Parallel()

	view := sampleView()
	view.Dockets[0].CommentsLink = results.BuildCommentsLink("X", "term", 0)

	out := render(t, Results(view))

	assert.Contains(t, out, "<dt>Matching Comments</dt>")
	assert.NotContains(t, out, "/comments?filter=")
}

func TestPagination(t *testing.T) {
	t.Parallel()

	out := render(t, Pagination("ozone", results.ComputeWindow(10, 20, results.DefaultMaxVisible)))

	assert.Equal(t, 4, strings.Count(out, `class="page-control"`))
	assert.Equal(t, 9, strings.Count(out, `class="page"`))
	assert.Equal(t, 1, strings.Count(out, `class="page active"`))
	assert.Contains(t, out, `aria-current="page" disabled>11</button>`)
	assert.Contains(t, out, `hx-get="/search/page?current=10&amp;page=6&amp;q=ozone"`)
	assert.Contains(t, out, `hx-get="/search/page?current=10&amp;page=15&amp;q=ozone"`)
	assert.NotContains(t, out, ";page=5&amp;")
	assert.NotContains(t, out, ";page=16&amp;")
}

func TestPagination_DisabledControls(t *testing.T) {
	t.Parallel()

	out := render(t, Pagination("", results.ComputeWindow(0, 2, results.DefaultMaxVisible)))

	assert.Contains(t, out, `aria-label="First page" disabled>`)
	assert.Contains(t, out, `aria-label="Previous page" disabled>`)
	assert.NotContains(t, out, `aria-label="Next page" disabled>`)
	assert.Contains(t, out, `aria-label="Last page" hx-get=`)
}

func TestPagination_SinglePage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, render(t, Pagination("x", results.ComputeWindow(0, 1, results.DefaultMaxVisible))))
}

func TestHome(t *testing.T) {
	t.Parallel()

	out := render(t, Home(HomeMetrics{TotalDockets: 26, TotalAgencies: 3, HasData: true, TopAgency: "EPA"}, false))
	assert.Contains(t, out, `<span class="metric-value">26</span>`)
	assert.Contains(t, out, "Most active agency")
	assert.NotContains(t, out, "Sign out")
	assert.NotContains(t, out, "hx-get")

	out = render(t, Home(HomeMetrics{}, true))
	assert.Contains(t, out, "No dockets have been imported yet")
	assert.Contains(t, out, "Sign out")
}
