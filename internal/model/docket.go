package model

import (
	"database/sql"
	"strings"
	"time"
)

// DocketType classifies a docket as rulemaking or not
type DocketType int

const (
	DocketTypeUnknown DocketType = iota
	DocketTypeRulemaking
	DocketTypeNonrulemaking
)

// ParseDocketType maps the regulations.gov docketType attribute to a DocketType
func ParseDocketType(s string) DocketType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "rulemaking":
		return DocketTypeRulemaking
	case "nonrulemaking":
		return DocketTypeNonrulemaking
	default:
		return DocketTypeUnknown
	}
}

// String returns the name stored in the database
func (t DocketType) String() string {
	switch t {
	case DocketTypeRulemaking:
		return "Rulemaking"
	case DocketTypeNonrulemaking:
		return "Nonrulemaking"
	default:
		return "Unknown"
	}
}

// MatchCount pairs the number of items matching a search with the docket total.
// Match is not guaranteed to be <= Total.
type MatchCount struct {
	Match int
	Total int
}

// Docket is a single search result as handed over by the fetch layer
type Docket struct {
	ID               string
	Title            string
	AgencyName       string
	DocketType       DocketType
	Summary          sql.NullString
	IsOpenForComment bool
	Comments         MatchCount
	Attachments      MatchCount
	TimelineDates    []time.Time
	DateModified     time.Time
}

// ResultsPage is one page of search results. CurrentPage is zero-based.
type ResultsPage struct {
	Dockets     []Docket
	CurrentPage int
	TotalPages  int
}

// IsEmpty reports whether the page carries no dockets
func (p *ResultsPage) IsEmpty() bool {
	return p == nil || len(p.Dockets) == 0
}
