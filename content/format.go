package content

import "time"

const dateLayout = "2006-01-02"

// FormatDate renders an ISO date as "Nov 15, 2025". Values that do not
// parse are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// ParseDate parses an entry date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(dateLayout, date)
}
