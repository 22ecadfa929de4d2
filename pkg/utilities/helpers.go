package utilities

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatDate renders a unix timestamp as DD.MM.YYYY.
func FormatDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("02.01.2006")
}

// FormatFlightTime renders accumulated tunnel seconds in a compact form.
func FormatFlightTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d min", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatDaysCount renders a day count as the largest round unit.
func FormatDaysCount(days float64) string {
	d := int(math.Round(days))
	years := d / 365
	months := (d % 365) / 30
	rest := (d % 365) % 30

	switch {
	case years > 0:
		return fmt.Sprintf("%d year%s", years, plural(years))
	case months > 0:
		return fmt.Sprintf("%d month%s", months, plural(months))
	default:
		return fmt.Sprintf("%d day%s", rest, plural(rest))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

const markdownSpecials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes Telegram MarkdownV2 special characters.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeUsername strips the leading @ and surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
