package coach

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPeriodKey reports a symbolic period key outside the shared
// classifier/resolver vocabulary. This is a contract violation and is
// propagated, unlike classification noise which is absorbed.
var ErrUnknownPeriodKey = errors.New("unknown period key")

// Symbolic period keys.
const (
	KeyCurrentWeek    = "CURRENT_WEEK"
	KeyPreviousWeek   = "PREVIOUS_WEEK"
	KeyCurrentMonth   = "CURRENT_MONTH"
	KeyPreviousMonth  = "PREVIOUS_MONTH"
	KeyLast2Weeks     = "LAST_2_WEEKS"
	KeyPrevious2Weeks = "PREVIOUS_2_WEEKS"
)

const dateLayout = "2006-01-02"

// weekStart returns the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday has Sunday=0; shift so Monday=0.
	return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
}

// ResolveWeek returns the week at the given offset from today's week.
// Offset 0 is the current week, -1 the previous one. The period runs from
// Monday to the next Monday (exclusive end).
func ResolveWeek(today time.Time, offset int) Period {
	start := weekStart(today).AddDate(0, 0, 7*offset)
	end := start.AddDate(0, 0, 7)
	return Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)}
}

// ResolveMonth returns the calendar month as a period from the 1st through
// the last day (inclusive). Leap years follow the proleptic Gregorian
// calendar via time.Date day-zero normalization.
func ResolveMonth(year, month int) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)}
}

// ResolveMonthRelative resolves a month at the given offset from today's
// month, carrying whole years in either direction. It is always anchored at
// today, never at the held snapshot's period.
func ResolveMonthRelative(today time.Time, offset int) Period {
	month := int(today.Month()) + offset
	year := today.Year()
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	return ResolveMonth(year, month)
}

// ResolveKey resolves a symbolic period key against today.
func ResolveKey(today time.Time, key string) (Period, error) {
	switch key {
	case KeyCurrentWeek:
		return ResolveWeek(today, 0), nil
	case KeyPreviousWeek:
		return ResolveWeek(today, -1), nil
	case KeyCurrentMonth:
		return ResolveMonth(today.Year(), int(today.Month())), nil
	case KeyPreviousMonth:
		return ResolveMonthRelative(today, -1), nil
	case KeyLast2Weeks:
		// The two-week window ending with the current week.
		start := weekStart(today).AddDate(0, 0, -7)
		end := start.AddDate(0, 0, 14)
		return Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)}, nil
	case KeyPrevious2Weeks:
		// The two weeks immediately before that window.
		start := weekStart(today).AddDate(0, 0, -21)
		end := start.AddDate(0, 0, 14)
		return Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)}, nil
	default:
		return Period{}, fmt.Errorf("%w: %s", ErrUnknownPeriodKey, key)
	}
}

// SamePeriod is the snapshot sufficiency check: the held snapshot is reused
// only when both dates match exactly. Overlap is never enough: the router
// cannot re-aggregate partial data, so anything else triggers a fetch.
func SamePeriod(held, target Period) bool {
	return held.Start == target.Start && held.End == target.End
}
