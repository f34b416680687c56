package results

import "net/url"

const (
	regulationsBaseURL   = "https://www.regulations.gov"
	MatchingCommentsText = "Matching Comments"
)

// Link is a label that may or may not point somewhere
type Link struct {
	Label string
	Href  string
}

// HasHref reports whether the link should be rendered as an anchor
func (l Link) HasHref() bool {
	return l.Href != ""
}

// DocketURL returns the regulations.gov page for a docket
func DocketURL(docketID string) string {
	return regulationsBaseURL + "/docket/" + url.PathEscape(docketID)
}

// BuildCommentsLink links to the docket's comments filtered by term.
// A docket without comments gets a plain label.
func BuildCommentsLink(docketID, term string, total int) Link {
	if total == 0 {
		return Link{Label: MatchingCommentsText}
	}

	return Link{
		Label: MatchingCommentsText,
		Href:  DocketURL(docketID) + "/comments?filter=" + url.QueryEscape(term),
	}
}
