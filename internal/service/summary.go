package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// summaryPolicy strips every tag from docket abstracts, leaving a space where
// block markup separated words
var summaryPolicy = newSummaryPolicy()

func newSummaryPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// CleanSummary turns an HTML docket abstract into plain text with collapsed whitespace
func CleanSummary(abstract string) string {
	text := summaryPolicy.Sanitize(abstract)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
