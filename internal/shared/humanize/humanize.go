package humanize

import (
	"fmt"
	"strings"
)

// Minutes renders a minute count as a "2d 3h 45min" style breakdown.
// Segments with a zero value are dropped, so Minutes(0) returns "".
func Minutes(total int64) string {
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dmin", minutes)
	}
	return strings.TrimRight(b.String(), " ")
}
