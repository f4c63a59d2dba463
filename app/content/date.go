package content

const longDateLayout = "Monday, January 2, 2006"

// FormatLongDate renders an ISO date as "Tuesday, June 17, 2025". Values
// that do not parse are returned unchanged.
func FormatLongDate(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format(longDateLayout)
}
