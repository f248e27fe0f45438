package catalog

import (
	"fmt"
	"strings"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// DayGroup represents the day pattern a section meets on. Sections meet on one
// of three fixed patterns: Monday/Thursday, Tuesday/Friday, or
// Wednesday/Saturday.
type DayGroup string

const (
	// DaysMTH - Monday and Thursday.
	DaysMTH DayGroup = "MTH"
	// DaysTF - Tuesday and Friday.
	DaysTF DayGroup = "TF"
	// DaysWS - Wednesday and Saturday.
	DaysWS DayGroup = "WS"
)

// IsValid checks that the day group is one of the known patterns.
func (d DayGroup) IsValid() bool {
	switch d {
	case DaysMTH, DaysTF, DaysWS:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d DayGroup) String() string {
	return string(d)
}

// ParseDayGroup parses a day group from its string form, case-insensitively.
func ParseDayGroup(s string) (DayGroup, error) {
	d := DayGroup(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", shared.NewDomainError("catalog", "ParseDayGroup", shared.ErrInvalidFormat,
			fmt.Sprintf("day group must be one of MTH, TF, WS, was: %q", s))
	}
	return d, nil
}

// Schedule is an immutable (day group, period) pair describing when a section
// meets.
type Schedule struct {
	days   DayGroup
	period Period
}

// NewSchedule creates a schedule from a day group and a period.
func NewSchedule(days DayGroup, period Period) (Schedule, error) {
	if !days.IsValid() {
		return Schedule{}, shared.NewDomainError("catalog", "NewSchedule", shared.ErrInvalidFormat,
			fmt.Sprintf("day group must be one of MTH, TF, WS, was: %q", string(days)))
	}
	if period.IsZero() {
		return Schedule{}, shared.NewDomainError("catalog", "NewSchedule", shared.ErrNilReference,
			"period is required")
	}
	return Schedule{days: days, period: period}, nil
}

// MustNewSchedule is a convenience constructor for statically known schedules.
// It panics on invalid input.
func MustNewSchedule(days DayGroup, period Period) Schedule {
	s, err := NewSchedule(days, period)
	if err != nil {
		panic(err)
	}
	return s
}

// Days returns the day group.
func (s Schedule) Days() DayGroup {
	return s.days
}

// Period returns the period.
func (s Schedule) Period() Period {
	return s.period
}

// ConflictsWith reports whether two schedules collide: same day group and
// overlapping periods. Schedules on different day groups never conflict.
func (s Schedule) ConflictsWith(other Schedule) bool {
	if s.days != other.days {
		return false
	}
	return s.period.Overlaps(other.period)
}

// String returns the schedule as "MTH 08:30 - 10:00".
func (s Schedule) String() string {
	return fmt.Sprintf("%s %s", s.days, s.period)
}
