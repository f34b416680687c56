package results

import (
	"math/big"
	"strconv"
	"strings"
)

// maxDecimals bounds the length of the rendered percentage
const maxDecimals = 20

const (
	NoCommentsLabel    = "No comments on this docket"
	NoAttachmentsLabel = "No comments with attachments on this docket"
)

// FormatPercentage renders "match/total (pct%)" with pct rounded half-up to
// decimals fractional digits. When total is zero it returns none instead.
// Counts above total produce values over 100%.
func FormatPercentage(match, total, decimals int, none string) string {
	if total == 0 {
		return none
	}
	decimals = min(max(decimals, 0), maxDecimals)

	return strconv.Itoa(match) + "/" + strconv.Itoa(total) + " (" + percent(match, total, decimals) + "%)"
}

// percent returns match/total*100 with decimals digits, rounded half away from zero
func percent(match, total, decimals int) string {
	num := big.NewInt(int64(match))
	num.Mul(num, big.NewInt(100))
	num.Mul(num, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	den := big.NewInt(int64(total))

	neg := num.Sign()*den.Sign() < 0
	num.Abs(num)
	den.Abs(den)

	// (2*num + den) / (2*den)
	num.Lsh(num, 1).Add(num, den)
	den.Lsh(den, 1)
	scaled := num.Quo(num, den)

	digits := scaled.String()
	if decimals > 0 {
		if len(digits) <= decimals {
			digits = strings.Repeat("0", decimals-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-decimals] + "." + digits[len(digits)-decimals:]
	}
	if neg && scaled.Sign() != 0 {
		digits = "-" + digits
	}
	return digits
}
