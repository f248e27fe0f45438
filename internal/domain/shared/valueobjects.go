package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// Catalog identifiers are plain alphanumeric tokens ("MTH101A", "X", "S18A").
var alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// SubjectID represents a unique subject identifier within the catalog.
type SubjectID string

// IsValid checks if the subject ID is non-blank and alphanumeric.
func (s SubjectID) IsValid() bool {
	return alphanumericRegex.MatchString(string(s))
}

// String returns the string representation.
func (s SubjectID) String() string {
	return string(s)
}

// NewSubjectID creates a new SubjectID with validation.
func NewSubjectID(id string) (SubjectID, error) {
	sid := SubjectID(strings.TrimSpace(id))
	if sid == "" {
		return "", NewDomainError("catalog", "NewSubjectID", ErrEmptyValue, "subject id cannot be blank")
	}
	if !sid.IsValid() {
		return "", NewDomainError("catalog", "NewSubjectID", ErrInvalidFormat,
			fmt.Sprintf("subject id must be alphanumeric, was: %q", id))
	}
	return sid, nil
}

// SectionID represents a unique section identifier within an enlistment term.
type SectionID string

// IsValid checks if the section ID is non-blank and alphanumeric.
func (s SectionID) IsValid() bool {
	return alphanumericRegex.MatchString(string(s))
}

// String returns the string representation.
func (s SectionID) String() string {
	return string(s)
}

// NewSectionID creates a new SectionID with validation.
func NewSectionID(id string) (SectionID, error) {
	sid := SectionID(strings.TrimSpace(id))
	if sid == "" {
		return "", NewDomainError("enlistment", "NewSectionID", ErrEmptyValue, "section id cannot be blank")
	}
	if !sid.IsValid() {
		return "", NewDomainError("enlistment", "NewSectionID", ErrInvalidFormat,
			fmt.Sprintf("section id must be alphanumeric, was: %q", id))
	}
	return sid, nil
}

// RoomName represents the name of a physical room. Rooms are identified by name.
type RoomName string

// IsValid checks if the room name is non-blank and alphanumeric.
func (r RoomName) IsValid() bool {
	return alphanumericRegex.MatchString(string(r))
}

// String returns the string representation.
func (r RoomName) String() string {
	return string(r)
}

// NewRoomName creates a new RoomName with validation.
func NewRoomName(name string) (RoomName, error) {
	rn := RoomName(strings.TrimSpace(name))
	if rn == "" {
		return "", NewDomainError("catalog", "NewRoomName", ErrEmptyValue, "room name cannot be blank")
	}
	if !rn.IsValid() {
		return "", NewDomainError("catalog", "NewRoomName", ErrInvalidFormat,
			fmt.Sprintf("room name must be alphanumeric, was: %q", name))
	}
	return rn, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// StudentNo Value Object
// ═══════════════════════════════════════════════════════════════════════════

// StudentNo represents a student number, the identity key of a student.
type StudentNo int

// IsValid checks if the student number is non-negative.
func (n StudentNo) IsValid() bool {
	return n >= 0
}

// Int returns the underlying int value.
func (n StudentNo) Int() int {
	return int(n)
}

// String returns the string representation.
func (n StudentNo) String() string {
	return fmt.Sprintf("%d", int(n))
}

// NewStudentNo creates a new StudentNo with validation.
func NewStudentNo(no int) (StudentNo, error) {
	if no < 0 {
		return 0, NewDomainError("enlistment", "NewStudentNo", ErrNegativeValue,
			fmt.Sprintf("student number must be non-negative, was: %d", no))
	}
	return StudentNo(no), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Units Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Units represents an academic unit count. Unit counts are never negative;
// zero-unit subjects exist (for example residency or colloquium entries).
type Units int

// IsValid checks if the unit count is non-negative.
func (u Units) IsValid() bool {
	return u >= 0
}

// Int returns the underlying int value.
func (u Units) Int() int {
	return int(u)
}

// Add returns the sum of two unit counts.
func (u Units) Add(other Units) Units {
	return u + other
}

// NewUnits creates a new Units value with validation.
func NewUnits(units int) (Units, error) {
	if units < 0 {
		return 0, NewDomainError("catalog", "NewUnits", ErrNegativeValue,
			fmt.Sprintf("units cannot be negative, was: %d", units))
	}
	return Units(units), nil
}
