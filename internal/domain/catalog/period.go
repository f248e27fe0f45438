package catalog

import (
	"fmt"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Slot encodes a clock time at half-hour granularity as hour*100 plus the
// minutes: 08:30 is 830, 10:00 is 1000, 17:30 is 1730. The encoding is
// monotonic in clock time, which lets periods compare slots numerically.
type Slot int

// The daily window in which class periods may be scheduled.
const (
	MinSlot Slot = 830  // 08:30
	MaxSlot Slot = 1730 // 17:30
)

// IsValid checks that the slot is within the daily window and lands on a
// half-hour boundary.
func (s Slot) IsValid() bool {
	if s < MinSlot || s > MaxSlot {
		return false
	}
	minutes := int(s) % 100
	return minutes == 0 || minutes == 30
}

// Hour returns the hour component in military time.
func (s Slot) Hour() int {
	return int(s) / 100
}

// Minute returns the minute component (0 or 30).
func (s Slot) Minute() int {
	return int(s) % 100
}

// String returns the slot as "HH:MM".
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

// NewSlot creates a new Slot with validation.
func NewSlot(slot int) (Slot, error) {
	s := Slot(slot)
	if !s.IsValid() {
		return 0, shared.NewDomainError("catalog", "NewSlot", shared.ErrValueOutOfRange,
			fmt.Sprintf("slot must be a half-hour mark between %s and %s, was: %d", MinSlot, MaxSlot, slot))
	}
	return s, nil
}

// Period is an immutable time interval within the daily window. Identity is by
// value: two periods with the same start and end slots are the same period.
type Period struct {
	start Slot
	end   Slot
}

// NewPeriod creates a period from start and end slots. The period must start
// strictly before it ends and both slots must be valid half-hour marks within
// the 08:30-17:30 window.
func NewPeriod(start, end int) (Period, error) {
	startSlot, err := NewSlot(start)
	if err != nil {
		return Period{}, err
	}
	endSlot, err := NewSlot(end)
	if err != nil {
		return Period{}, err
	}
	if startSlot >= endSlot {
		return Period{}, shared.NewDomainError("catalog", "NewPeriod", shared.ErrValueOutOfRange,
			fmt.Sprintf("period must start before it ends, was: %s - %s", startSlot, endSlot))
	}
	return Period{start: startSlot, end: endSlot}, nil
}

// MustNewPeriod is a convenience constructor for statically known periods.
// It panics on invalid input and is intended for test fixtures and catalogs
// assembled in code.
func MustNewPeriod(start, end int) Period {
	p, err := NewPeriod(start, end)
	if err != nil {
		panic(err)
	}
	return p
}

// Start returns the starting slot.
func (p Period) Start() Slot {
	return p.start
}

// End returns the ending slot.
func (p Period) End() Slot {
	return p.end
}

// IsZero reports whether the period is the uninitialized zero value.
func (p Period) IsZero() bool {
	return p.start == 0 && p.end == 0
}

// Overlaps reports whether two periods share any time. Equal periods overlap,
// a period fully containing another overlaps it, and back-to-back periods
// (end of one equals start of the other) do not overlap.
//
// Slot encoding is monotonic in clock time, so the intervals can be compared
// numerically: they overlap iff min(endA, endB) > max(startA, startB).
func (p Period) Overlaps(other Period) bool {
	minEnd := p.end
	if other.end < minEnd {
		minEnd = other.end
	}
	maxStart := p.start
	if other.start > maxStart {
		maxStart = other.start
	}
	return minEnd > maxStart
}

// String returns the period as "HH:MM - HH:MM".
func (p Period) String() string {
	return fmt.Sprintf("%s - %s", p.start, p.end)
}
