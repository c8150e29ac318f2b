// Package timefmt parses and formats fight timestamps.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be seconds or M:SS")
	ErrNegativeTime      = errors.New("time cannot be negative")
	ErrEndBeforeStart    = errors.New("end time must be on or after start time")
)

// Format renders seconds as M:SS, e.g. 95 -> "1:35".
func Format(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/60, seconds%60)
}

// Parse accepts plain seconds ("95") or M:SS ("1:35").
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidTimeFormat
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeTime
	}

	mins, secs, found := strings.Cut(s, ":")
	if !found {
		n, err := strconv.Atoi(s)
		if err != nil || !digits(s) {
			return 0, ErrInvalidTimeFormat
		}
		return n, nil
	}

	if len(secs) != 2 || !digits(secs) || !digits(mins) {
		return 0, ErrInvalidTimeFormat
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	sec, err := strconv.Atoi(secs)
	if err != nil || sec >= 60 {
		return 0, ErrInvalidTimeFormat
	}
	return m*60 + sec, nil
}

// digits reports whether s is a non-empty run of ASCII digits.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Range is a validated pair of fight times.
type Range struct {
	Start int
	End   int
}

// ParseRange parses start and end. An empty end defaults to start.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, fmt.Errorf("start: %w", err)
	}
	if strings.TrimSpace(end) == "" {
		return Range{Start: s, End: s}, nil
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, fmt.Errorf("end: %w", err)
	}
	if e < s {
		return Range{}, ErrEndBeforeStart
	}
	return Range{Start: s, End: e}, nil
}

// FormatSpan renders a closed range as "M:SS-M:SS", or a single time when
// both ends match.
func FormatSpan(start, end int) string {
	if start == end {
		return Format(start)
	}
	return Format(start) + "-" + Format(end)
}
