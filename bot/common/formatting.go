package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatPoints formats a points amount with thousand separators
func FormatPoints(points int64) string {
	sign := ""
	if points < 0 {
		sign = "-"
		points = -points
	}
	str := fmt.Sprintf("%d", points)

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// PluralPoints returns "1 point" or "N points"
func PluralPoints(points int64) string {
	if points == 1 || points == -1 {
		return FormatPoints(points) + " point"
	}
	return FormatPoints(points) + " points"
}

// FormatDuration renders a timeout the way users read it: "1 hour", "5 minutes", "90 seconds"
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minute")
	default:
		return plural(int64(d.Round(time.Second)/time.Second), "second")
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
