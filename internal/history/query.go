package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
)

// Filter narrows the history log for display
type Filter struct {
	Term     string    // matched against property name, details and username
	Date     time.Time // calendar day in Location; zero means every day
	Location *time.Location
}

// Query returns the entries matching f, keeping newest-first order
func Query(log []domain.LogEntry, f Filter) []domain.LogEntry {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}

	var y int
	var m time.Month
	var d int
	if !f.Date.IsZero() {
		y, m, d = f.Date.In(loc).Date()
	}

	out := make([]domain.LogEntry, 0, len(log))
	for _, e := range log {
		if term != "" && !matchesTerm(e, term) {
			continue
		}
		if !f.Date.IsZero() {
			ey, em, ed := e.Timestamp.In(loc).Date()
			if ey != y || em != m || ed != d {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func matchesTerm(e domain.LogEntry, term string) bool {
	return strings.Contains(strings.ToLower(e.KostName), term) ||
		strings.Contains(strings.ToLower(e.Details), term) ||
		strings.Contains(strings.ToLower(e.Username), term)
}

// ParseDay parses a YYYY-MM-DD day in loc. An empty string yields the zero time.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// TimeAgo renders t relative to now for the history list. Anything older
// than a week is shown as an absolute date.
func TimeAgo(t, now time.Time) string {
	seconds := int(math.Round(now.Sub(t).Seconds()))
	minutes := int(math.Round(float64(seconds) / 60))
	hours := int(math.Round(float64(minutes) / 60))
	days := int(math.Round(float64(hours) / 24))

	switch {
	case seconds < 60:
		return plural(seconds, "second")
	case minutes < 60:
		return plural(minutes, "minute")
	case hours < 24:
		return plural(hours, "hour")
	case days <= 7:
		return plural(days, "day")
	}
	return t.In(now.Location()).Format("January 2, 2006 15:04")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
