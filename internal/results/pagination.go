package results

// DefaultMaxVisible is the number of numbered page buttons shown at once
const DefaultMaxVisible = 10

// Control is one of the first/prev/next/last buttons
type Control struct {
	Target  int
	Enabled bool
}

// PaginationControlModel describes the pagination bar for one render.
// The zero value is the empty model: nothing is rendered.
type PaginationControlModel struct {
	VisiblePages []int
	Current      int
	Total        int
	First        Control
	Prev         Control
	Next         Control
	Last         Control
}

// IsEmpty reports whether there is no pagination bar to render
func (m PaginationControlModel) IsEmpty() bool {
	return len(m.VisiblePages) == 0
}

// IsCurrent reports whether page is the page being displayed
func (m PaginationControlModel) IsCurrent(page int) bool {
	return !m.IsEmpty() && page == m.Current
}

// DisplayLabel converts a zero-based page index to the number shown on its button
func DisplayLabel(page int) int {
	return page + 1
}

// PageFromLabel converts a button number back to the zero-based page index
func PageFromLabel(label int) int {
	return label - 1
}

// ComputeWindow returns the page buttons to render around current.
//
// The window keeps current centered and shifts when it would run past either
// end. A total of one page or less, or a current page outside [0, total),
// yields the empty model.
func ComputeWindow(current, total, maxVisible int) PaginationControlModel {
	if total <= 1 || current < 0 || current >= total {
		return PaginationControlModel{}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	window := min(maxVisible, total)

	start := max(0, current-window/2)
	end := start + window - 1
	if end >= total {
		end = total - 1
		start = max(0, end-window+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	atStart := current == 0
	atEnd := current == total-1

	return PaginationControlModel{
		VisiblePages: pages,
		Current:      current,
		Total:        total,
		First:        Control{Target: 0, Enabled: !atStart},
		Prev:         Control{Target: current - 1, Enabled: !atStart},
		Next:         Control{Target: current + 1, Enabled: !atEnd},
		Last:         Control{Target: total - 1, Enabled: !atEnd},
	}
}
