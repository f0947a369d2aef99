package resume

import (
	"strings"
	"time"
)

const monthYearLayout = "2006-01"

// FormatMonthYear turns a "YYYY-MM" date into "January 2006". Malformed
// input degrades to an empty string; it never raises.
func FormatMonthYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse(monthYearLayout, value)
	if err != nil {
		return ""
	}
	return t.Format("January 2006")
}

// FormatDateRange renders "January 2022 - March 2023" style ranges. When
// current is set the end label is always "Present", whatever the stored end
// date says. Unparseable halves fall away rather than erroring.
func FormatDateRange(start, end string, current bool) string {
	from := FormatMonthYear(start)
	if current {
		if from == "" {
			return "Present"
		}
		return from + " - Present"
	}
	to := FormatMonthYear(end)
	switch {
	case from == "" && to == "":
		return ""
	case to == "":
		return from
	case from == "":
		return to
	default:
		return from + " - " + to
	}
}
