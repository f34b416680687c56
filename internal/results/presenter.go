package results

import (
	"time"

	"github.com/jjenkins/mirrulations/internal/model"
)

const dateModifiedLayout = "Jan 2, 2006"

// StatLine is a formatted statistic, or the "none" label when HasData is false
type StatLine struct {
	Text    string
	HasData bool
}

// DocketView is a docket ready to render
type DocketView struct {
	ID             string
	Title          string
	AgencyName     string
	DocketURL      string
	Comments       StatLine
	CommentsLink   Link
	Attachments    StatLine
	Summary        string
	Timeline       []time.Time
	OpenForComment string
	Icon           Icon
	DateModified   string
}

// ResultsView is everything the results section needs for one render
type ResultsView struct {
	SearchTerm  string
	Dockets     []DocketView
	Pagination  PaginationControlModel
	Visible     bool
	ScrollToTop bool
}

// IsEmpty reports whether there are no dockets to show
func (v ResultsView) IsEmpty() bool {
	return len(v.Dockets) == 0
}

// Presenter turns result pages into views. It remembers whether results have
// arrived so the results section can fade in.
type Presenter struct {
	visible    bool
	maxVisible int
}

// NewPresenter creates a Presenter showing DefaultMaxVisible page buttons
func NewPresenter() *Presenter {
	return &Presenter{maxVisible: DefaultMaxVisible}
}

// Visible reports whether the last page presented had results
func (p *Presenter) Visible() bool {
	return p.visible
}

// Present builds the view for page. A non-empty page makes the results visible
// and asks for the results section to be scrolled into view; an empty page
// hides them again.
func (p *Presenter) Present(page *model.ResultsPage, term string) ResultsView {
	view := ResultsView{SearchTerm: term}

	if page.IsEmpty() {
		p.visible = false
		if page != nil {
			view.Pagination = ComputeWindow(page.CurrentPage, page.TotalPages, p.maxVisible)
		}
		return view
	}

	p.visible = true
	view.Visible = true
	view.ScrollToTop = true

	view.Dockets = make([]DocketView, len(page.Dockets))
	for i := range page.Dockets {
		view.Dockets[i] = presentDocket(&page.Dockets[i], term)
	}
	view.Pagination = ComputeWindow(page.CurrentPage, page.TotalPages, p.maxVisible)

	return view
}

func presentDocket(d *model.Docket, term string) DocketView {
	summary := NoSummaryText
	if d.Summary.Valid {
		summary = TruncateSummary(d.Summary.String)
	}

	openForComment := "No"
	if d.IsOpenForComment {
		openForComment = "Yes"
	}

	var modified string
	if !d.DateModified.IsZero() {
		modified = d.DateModified.Format(dateModifiedLayout)
	}

	return DocketView{
		ID:         d.ID,
		Title:      d.Title,
		AgencyName: d.AgencyName,
		DocketURL:  DocketURL(d.ID),
		Comments: StatLine{
			Text:    FormatPercentage(d.Comments.Match, d.Comments.Total, 2, NoCommentsLabel),
			HasData: d.Comments.Total != 0,
		},
		CommentsLink: BuildCommentsLink(d.ID, term, d.Comments.Total),
		Attachments: StatLine{
			Text:    FormatPercentage(d.Attachments.Match, d.Attachments.Total, 2, NoAttachmentsLabel),
			HasData: d.Attachments.Total != 0,
		},
		Summary:        summary,
		Timeline:       d.TimelineDates,
		OpenForComment: openForComment,
		Icon:           SelectIcon(d.DocketType),
		DateModified:   modified,
	}
}
