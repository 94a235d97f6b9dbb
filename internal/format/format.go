// Package format provides pure formatting helpers for notification text.
package format

import (
	"fmt"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// Amount renders a monetary amount with its currency. Known currencies use
// their symbol as a prefix ("€1,234.56"); anything else gets the code as a
// suffix ("1,234.56 SEK").
func Amount(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "EUR"
	}

	value := groupThousands(fmt.Sprintf("%.2f", amount))
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + value
	}
	return value + " " + code
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return groupThousands(fmt.Sprintf("%d", n))
}

// Date renders a timestamp as a short human date.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// RelativeTime renders how long ago t was, relative to now.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "1 hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return Date(t)
	}
}

// DaysUntil returns the number of whole days from now until t, at day
// granularity: time-of-day is ignored on both sides, so a due date later
// today is 0 days away regardless of the hour.
func DaysUntil(t, now time.Time) int {
	due := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// EscapeText escapes the three characters Slack's mrkdwn treats as control
// characters in user-supplied text.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// groupThousands inserts comma separators into the integer part of a numeric
// string such as "1234567.89".
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
