package views

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"careconnect_web/internal/models"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     FormatDate,
		"formatTime":     FormatTime,
		"formatDateTime": FormatDateTime,
		"truncate":       Truncate,
		"money":          Money,
		"fieldError":     fieldError,
		"year":           func() int { return time.Now().Year() },
	}
}

// FormatDate renders "2026-11-02" as "Mon, Nov 2". Unparseable input is
// returned unchanged.
func FormatDate(s string) string {
	if len(s) >= 10 {
		if t, err := time.Parse(time.DateOnly, s[:10]); err == nil {
			return t.Format("Mon, Jan 2")
		}
	}
	return s
}

// FormatTime drops the seconds of "15:04:05".
func FormatTime(s string) string {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// FormatDateTime renders a timestamp such as "2026-10-01T14:30:00" as "Oct 1, 2026".
func FormatDateTime(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// Truncate cuts s to n runes followed by "...". Usable as a pipeline:
// {{ .Description | truncate 60 }}.
func Truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " ") + "..."
}

func Money(d models.Decimal) string {
	return fmt.Sprintf("$%.2f", d.Float64())
}

func fieldError(errors map[string]string, field string) string {
	if errors == nil {
		return ""
	}
	return errors[field]
}
