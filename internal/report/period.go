package report

import (
	"fmt"
	"time"
)

// Granularity selects the calendar bucket size for a report.
type Granularity int

const (
	Monthly Granularity = iota
	Quarterly
	Yearly
)

// ParseGranularity maps a route segment to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "yearly":
		return Yearly, nil
	}
	return 0, fmt.Errorf("unknown report granularity %q", s)
}

// Period identifies one calendar bucket.
type Period struct {
	Year    int
	Quarter int        // 1-4, set for Quarterly
	Month   time.Month // set for Monthly
	Gran    Granularity
}

// PeriodOf buckets a date according to the granularity.
func PeriodOf(t time.Time, g Granularity) Period {
	p := Period{Year: t.Year(), Gran: g}
	switch g {
	case Monthly:
		p.Month = t.Month()
	case Quarterly:
		p.Quarter = (int(t.Month())-1)/3 + 1
	}
	return p
}

// Start is the first instant of the period, used for chronological
// ordering of report rows.
func (p Period) Start() time.Time {
	switch p.Gran {
	case Monthly:
		return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		return time.Date(p.Year, time.Month((p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// Label renders the period the way the report displays it:
// "January 2024", "Q1 2024" or "2024".
func (p Period) Label() string {
	switch p.Gran {
	case Monthly:
		return fmt.Sprintf("%s %d", p.Month.String(), p.Year)
	case Quarterly:
		return fmt.Sprintf("Q%d %d", p.Quarter, p.Year)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}
