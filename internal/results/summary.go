package results

import "strings"

const (
	MaxSummaryLength = 300
	Ellipsis         = "..."
	NoSummaryText    = "No summary available"
)

// TruncateSummary shortens s to MaxSummaryLength characters followed by an
// ellipsis. Applying it to its own output returns the same string.
func TruncateSummary(s string) string {
	if strings.TrimSpace(s) == "" {
		return NoSummaryText
	}

	runes := []rune(s)
	if len(runes) <= MaxSummaryLength {
		return s
	}
	return string(runes[:MaxSummaryLength]) + Ellipsis
}
