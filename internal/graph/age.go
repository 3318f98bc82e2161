package graph

import (
	"fmt"
	"time"
)

// HumanAge renders the duration between a commit's create time and now as
// a short human string ("3 days ago", "Just now"), ported from rit.py's
// pprint_time_duration.
func HumanAge(createTime float64, now time.Time) string {
	start := time.Unix(int64(createTime), 0)
	dur := now.Sub(start)

	sec := dur.Seconds()
	min := sec / 60
	hour := min / 60
	day := hour / 24

	months := 12*(now.Year()-start.Year()) + int(now.Month()) - int(start.Month())
	years := months / 12

	switch {
	case years >= 5:
		return pluralize(years, "year") + " ago"
	case years >= 1:
		return pluralize(years, "year") + ", " + pluralize(months%12, "month") + " ago"
	case months >= 1:
		return pluralize(months%12, "month") + " ago"
	case day >= 1:
		return pluralize(int(day), "day") + " ago"
	case hour >= 1:
		return pluralize(int(hour)%24, "hour") + " ago"
	case min >= 1:
		return pluralize(int(min)%60, "minute") + " ago"
	case sec >= 20:
		return pluralize(int(sec)%60, "second") + " ago"
	default:
		return "Just now"
	}
}

func pluralize(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
