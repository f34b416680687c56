package results

import (
	"net/url"
	"strings"
	"testing"

	"github.com/jjenkins/mirrulations/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		match    int
		total    int
		decimals int
		want     string
	}{
		{name: "quarter", match: 1, total: 4, decimals: 2, want: "1/4 (25.00%)"},
		{name: "zero match", match: 0, total: 7, decimals: 2, want: "0/7 (0.00%)"},
		{name: "all match", match: 3, total: 3, decimals: 2, want: "3/3 (100.00%)"},
		{name: "third", match: 1, total: 3, decimals: 2, want: "1/3 (33.33%)"},
		{name: "two thirds rounds up", match: 2, total: 3, decimals: 2, want: "2/3 (66.67%)"},
		{name: "half rounds up", match: 1, total: 8, decimals: 1, want: "1/8 (12.5%)"},
		{name: "half up at zero decimals", match: 1, total: 8, decimals: 0, want: "1/8 (13%)"},
		{name: "small fraction", match: 1, total: 2000, decimals: 2, want: "1/2000 (0.05%)"},
		{name: "tiny fraction", match: 1, total: 300000, decimals: 2, want: "1/300000 (0.00%)"},
		{name: "over one hundred", match: 5, total: 4, decimals: 2, want: "5/4 (125.00%)"},
		{name: "negative decimals", match: 1, total: 3, decimals: -2, want: "1/3 (33%)"},
		{name: "large counts at nine decimals", match: 100000000, total: 100000000, decimals: 9, want: "100000000/100000000 (100.000000000%)"},
		{name: "large counts rounding", match: 2000000000, total: 3000000000, decimals: 12, want: "2000000000/3000000000 (66.666666666667%)"},
		{name: "decimals capped", match: 1, total: 3, decimals: 50, want: "1/3 (33.33333333333333333333%)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatPercentage(tt.match, tt.total, tt.decimals, NoCommentsLabel))
		})
	}
}

func TestFormatPercentage_ZeroTotal(t *testing.T) {
	t.Parallel()

	got := FormatPercentage(0, 0, 2, NoCommentsLabel)
	require.Equal(t, NoCommentsLabel, got)
	require.NotContains(t, got, "NaN")
	require.NotContains(t, got, "Inf")

	require.Equal(t, NoAttachmentsLabel, FormatPercentage(0, 0, 2, NoAttachmentsLabel))
	require.Equal(t, NoAttachmentsLabel, FormatPercentage(3, 0, 2, NoAttachmentsLabel))
}

func TestBuildCommentsLink(t *testing.T) {
	t.Parallel()

	none := BuildCommentsLink("EPA-HQ-OAR-2021-0317", "clean air", 0)
	assert.Equal(t, MatchingCommentsText, none.Label)
	assert.False(t, none.HasHref())
	assert.Empty(t, none.Href)

	link := BuildCommentsLink("EPA-HQ-OAR-2021-0317", "clean air & water", 12)
	require.True(t, link.HasHref())
	assert.Equal(t, MatchingCommentsText, link.Label)
	assert.Equal(t,
		"https://www.regulations.gov/docket/EPA-HQ-OAR-2021-0317/comments?filter=clean+air+%26+water",
		link.Href)

	u, err := url.Parse(link.Href)
	require.NoError(t, err)
	assert.Equal(t, "clean air & water", u.Query().Get("filter"))
}

func TestDocketURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.regulations.gov/docket/FDA-2023-N-0001", DocketURL("FDA-2023-N-0001"))
}

func TestSelectIcon(t *testing.T) {
	t.Parallel()

	rule := SelectIcon(model.DocketTypeRulemaking)
	assert.Equal(t, "Rulemaking icon", rule.AltText)
	assert.Equal(t, "Rulemaking", rule.Tooltip)
	assert.Contains(t, rule.Asset, "hammer")

	for _, dt := range []model.DocketType{model.DocketTypeNonrulemaking, model.DocketTypeUnknown, model.DocketType(42)} {
		icon := SelectIcon(dt)
		assert.Equal(t, "Non-rulemaking icon", icon.AltText)
		assert.Equal(t, "Non-rulemaking", icon.Tooltip)
		assert.Contains(t, icon.Asset, "pencil")
	}
}

func TestTruncateSummary(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("a", MaxSummaryLength)
	assert.Equal(t, short, TruncateSummary(short))

	long := strings.Repeat("b", MaxSummaryLength+50)
	truncated := TruncateSummary(long)
	assert.Equal(t, strings.Repeat("b", MaxSummaryLength)+Ellipsis, truncated)
	assert.Equal(t, truncated, TruncateSummary(truncated))

	// multi-byte characters count once each
	accented := strings.Repeat("é", MaxSummaryLength+1)
	got := TruncateSummary(accented)
	assert.Equal(t, MaxSummaryLength+len([]rune(Ellipsis)), len([]rune(got)))
	assert.Equal(t, got, TruncateSummary(got))

	assert.Equal(t, NoSummaryText, TruncateSummary(""))
	assert.Equal(t, NoSummaryText, TruncateSummary("   \n"))
}
