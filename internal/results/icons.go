package results

import "github.com/jjenkins/mirrulations/internal/model"

// Icon is the image shown next to a docket title
type Icon struct {
	Asset   string
	AltText string
	Tooltip string
}

var (
	rulemakingIcon = Icon{
		Asset:   "/static/icons/hammer.svg",
		AltText: "Rulemaking icon",
		Tooltip: "Rulemaking",
	}
	nonrulemakingIcon = Icon{
		Asset:   "/static/icons/pencil.svg",
		AltText: "Non-rulemaking icon",
		Tooltip: "Non-rulemaking",
	}
)

// SelectIcon picks the icon for a docket type; anything but rulemaking gets the pencil
func SelectIcon(t model.DocketType) Icon {
	if t == model.DocketTypeRulemaking {
		return rulemakingIcon
	}
	return nonrulemakingIcon
}
