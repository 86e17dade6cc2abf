package templates

import (
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// helperFuncs exposes formatting helpers to all templates.
func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"money":   FormatMoney,
		"timeago": TimeAgo,
		"comma":   humanize.Comma,
	}
}

// FormatMoney renders a price with thousands separators and two decimals.
func FormatMoney(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// TimeAgo renders a timestamp as a relative duration ("3 hours ago").
func TimeAgo(t time.Time) string {
	return humanize.Time(t)
}
