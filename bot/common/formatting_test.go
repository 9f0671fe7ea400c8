package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		expected string
		delta    string
	}{
		{"whole", 5, "5", "+5"},
		{"negative", -5, "-5", "-5"},
		{"fraction", 5.0 / 3.0, "1.67", "+1.67"},
		{"one decimal", -2.5, "-2.5", "-2.5"},
		{"zero", 0, "0", "0"},
		{"negative rounding to zero", -0.001, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatTokens(tt.amount))
			assert.Equal(t, tt.delta, FormatTokenDelta(tt.amount))
		})
	}
}

func TestFormatNumbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", FormatNumbers(nil))
	assert.Equal(t, "7", FormatNumbers([]int{7}))
	assert.Equal(t, "1, 5, 10", FormatNumbers([]int{1, 5, 10}))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ёжик…", Truncate("ёжики в тумане", 5))
}

func TestJoinLines(t *testing.T) {
	t.Parallel()

	lines := []string{"aaaa", "bbbb", "cccc", "dddd"}
	assert.Equal(t, "aaaa\nbbbb\ncccc\ndddd", JoinLines(lines, 100))

	out := JoinLines(lines, 18)
	assert.Equal(t, "aaaa\n…and 3 more", out)
	assert.LessOrEqual(t, len(out), 18)
	assert.True(t, strings.HasPrefix(JoinLines(lines, 23), "aaaa\nbbbb\n…and 2"))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "< 1m"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.d))
	}
}
