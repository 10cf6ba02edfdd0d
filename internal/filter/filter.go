package filter

import (
	"fmt"
	"time"

	"github.com/thomiceli/gists-gone/internal/gist"
)

// Criteria is the set of predicates a gist must all satisfy to become a
// deletion candidate. Zero-value fields mean "match anything".
type Criteria struct {
	Languages  []string
	Visibility *gist.Visibility
	Dates      *DateRange
}

// DateRange covers calendar days from Start to End inclusive, in UTC.
// A single-day range has Start == End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses one or two YYYY-MM-DD arguments into a range.
func ParseDateRange(args []string) (*DateRange, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("too many dates: pass at most 2, got %d", len(args))
	}

	dates := make([]time.Time, 0, len(args))
	for _, arg := range args {
		date, err := time.ParseInLocation(time.DateOnly, arg, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD format", arg)
		}
		dates = append(dates, date)
	}

	switch len(dates) {
	case 0:
		return nil, nil
	case 1:
		return &DateRange{Start: dates[0], End: dates[0]}, nil
	default:
		if dates[0].After(dates[1]) {
			return nil, fmt.Errorf("invalid date range: %s is after %s", args[0], args[1])
		}
		return &DateRange{Start: dates[0], End: dates[1]}, nil
	}
}

func (r *DateRange) Contains(t time.Time) bool {
	day := t.UTC().Truncate(24 * time.Hour)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Empty reports whether no predicate is set, meaning every gist matches.
func (c Criteria) Empty() bool {
	return len(c.Languages) == 0 && c.Visibility == nil && c.Dates == nil
}

// Match reports whether g satisfies every specified predicate.
func (c Criteria) Match(g gist.Gist) bool {
	if len(c.Languages) > 0 {
		found := false
		for _, lang := range c.Languages {
			if g.Language == lang {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.Visibility != nil && g.Visibility != *c.Visibility {
		return false
	}

	if c.Dates != nil && !c.Dates.Contains(g.CreatedAt) {
		return false
	}

	return true
}

// Apply returns the gists matching all criteria, preserving input order.
func Apply(gists []gist.Gist, c Criteria) []gist.Gist {
	matched := make([]gist.Gist, 0, len(gists))
	for _, g := range gists {
		if c.Match(g) {
			matched = append(matched, g)
		}
	}
	return matched
}
