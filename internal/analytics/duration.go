package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	monthMarker  = "m"
	daysPerMonth = 30
)

// DateRange is a reporting window that always ends today.
type DateRange struct {
	Token   string
	Count   int
	Monthly bool
	Days    int
}

// ParseDuration turns "7" into a 7 day window and "3m" into a 90 day window.
func ParseDuration(token string) (DateRange, error) {
	monthly := strings.HasSuffix(token, monthMarker)
	number := strings.TrimSuffix(token, monthMarker)

	count, err := parseCount(number)
	if err != nil {
		return DateRange{}, NewError(InvalidDuration, "invalid duration %q: %w", token, err)
	}

	days := count
	if monthly {
		if count > math.MaxInt32/daysPerMonth {
			return DateRange{}, NewError(InvalidDuration, "invalid duration %q: too many months", token)
		}
		days = count * daysPerMonth
	}
	return DateRange{
		Token:   token,
		Count:   count,
		Monthly: monthly,
		Days:    days,
	}, nil
}

func parseCount(number string) (int, error) {
	if number == "" {
		return 0, fmt.Errorf("missing number")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a non-negative integer", number)
		}
	}
	return strconv.Atoi(number)
}

// StartDate is the relative start date understood by the reporting API.
func (r DateRange) StartDate() string {
	return fmt.Sprintf("%ddaysAgo", r.Days)
}

// EndDate is always today.
func (r DateRange) EndDate() string {
	return "today"
}

// Resolve pins the window to absolute dates relative to now.
func (r DateRange) Resolve(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -r.Days), today
}

// Label is the human form shown in replies, e.g. "7 day(s)" or "3 month(s)".
func (r DateRange) Label() string {
	if r.Monthly {
		return fmt.Sprintf("%d month(s)", r.Count)
	}
	return fmt.Sprintf("%d day(s)", r.Count)
}
