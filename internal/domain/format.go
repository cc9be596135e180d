package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ist is the display timezone for all schedules and receipts. The
// backend serves Indian domestic routes; times are rendered in IST
// regardless of the terminal's local zone.
var ist = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// FormatINR renders an amount in rupees with Indian digit grouping:
// the last three digits form one group, every group before that has
// two digits (₹12,34,567.50).
func FormatINR(amount float64) string {
	neg := amount < 0 || math.Signbit(amount)
	abs := math.Abs(amount)

	whole := int64(abs)
	frac := int64(math.Round((abs - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
	} else {
		groups = []string{digits}
	}

	out := "₹" + strings.Join(groups, ",") + fmt.Sprintf(".%02d", frac)
	if neg && (whole != 0 || frac != 0) {
		out = "-" + out
	}
	return out
}

// FormatTime renders a schedule time as "03:45 PM" in IST.
func FormatTime(t time.Time) string {
	return t.In(ist).Format("03:04 PM")
}

// FormatDate renders a schedule date as "2 January 2006" in IST.
func FormatDate(t time.Time) string {
	return t.In(ist).Format("2 January 2006")
}

// FlightDuration renders the elapsed time between start and end as
// "2h 05m". Negative spans collapse to "0h 00m".
func FlightDuration(start, end time.Time) string {
	d := end.Sub(start)
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
