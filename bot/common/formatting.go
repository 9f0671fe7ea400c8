package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FormatTokens formats a token amount with at most two decimals, e.g. "5", "1.67", "-2.5"
func FormatTokens(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatTokenDelta formats a balance change with an explicit sign
func FormatTokenDelta(amount float64) string {
	s := FormatTokens(amount)
	if s == "0" || strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// FormatNumbers joins numbers with commas, or returns "none"
func FormatNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "none"
	}
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// Truncate shortens s to max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// JoinLines joins lines within limit bytes, replacing the lines that do not fit with a "…and N more" note
func JoinLines(lines []string, limit int) string {
	full := strings.Join(lines, "\n")
	if len(full) <= limit {
		return full
	}
	for keep := len(lines) - 1; keep >= 0; keep-- {
		out := strings.Join(lines[:keep], "\n")
		note := fmt.Sprintf("…and %d more", len(lines)-keep)
		if keep > 0 {
			note = "\n" + note
		}
		if len(out)+len(note) <= limit {
			return out + note
		}
	}
	return ""
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatDuration formats a duration in a human-readable format
// Examples: "2d 14h 30m", "3h 45m", "45m", "< 1m"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "< 1m"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	return strings.Join(parts, " ")
}
