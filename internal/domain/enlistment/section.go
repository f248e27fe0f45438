package enlistment

import (
	"fmt"
	"sort"
	"sync"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Section is one offering of a subject, bound to a schedule and a room.
// Identity is by section id. The enlisted count is shared mutable state
// (many students enlist into the same section), so the capacity
// check-then-increment runs as one atomic unit behind the section's mutex.
type Section struct {
	id       shared.SectionID
	schedule catalog.Schedule
	room     *catalog.Room
	subject  *catalog.Subject

	mu       sync.Mutex
	enlisted int
}

// NewSection creates a standalone section with no enlisted students. The id
// must be non-blank and alphanumeric; schedule, room, and subject are
// required.
func NewSection(id string, schedule catalog.Schedule, room *catalog.Room, subject *catalog.Subject) (*Section, error) {
	sectionID, err := shared.NewSectionID(id)
	if err != nil {
		return nil, err
	}
	if schedule.Period().IsZero() {
		return nil, shared.NewDomainError("enlistment", "NewSection", shared.ErrNilReference,
			"schedule is required")
	}
	if room == nil {
		return nil, shared.NewDomainError("enlistment", "NewSection", shared.ErrNilReference,
			"room cannot be nil")
	}
	if subject == nil {
		return nil, shared.NewDomainError("enlistment", "NewSection", shared.ErrNilReference,
			"subject cannot be nil")
	}
	return &Section{
		id:       sectionID,
		schedule: schedule,
		room:     room,
		subject:  subject,
	}, nil
}

// NewSectionInGroup creates a section and registers it into the given group.
// Registration fails with shared.ErrScheduleRoomConflict when an already
// registered section occupies the same room at an overlapping schedule, in
// which case no section is created.
func NewSectionInGroup(id string, schedule catalog.Schedule, room *catalog.Room, subject *catalog.Subject, group *SectionGroup) (*Section, error) {
	if group == nil {
		return nil, shared.NewDomainError("enlistment", "NewSectionInGroup", shared.ErrNilReference,
			"section group cannot be nil")
	}
	section, err := NewSection(id, schedule, room, subject)
	if err != nil {
		return nil, err
	}
	if err := group.Register(section); err != nil {
		return nil, err
	}
	return section, nil
}

// ID returns the section identifier.
func (s *Section) ID() shared.SectionID {
	return s.id
}

// Schedule returns the section's schedule.
func (s *Section) Schedule() catalog.Schedule {
	return s.schedule
}

// Room returns the room the section is held in.
func (s *Section) Room() *catalog.Room {
	return s.room
}

// Subject returns the subject the section offers.
func (s *Section) Subject() *catalog.Subject {
	return s.subject
}

// Enlisted returns the current enlisted count.
func (s *Section) Enlisted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enlisted
}

// CheckForConflict fails with shared.ErrScheduleConflict when this section's
// schedule collides with the other section's, regardless of room. This is the
// per-student guard: one student cannot sit in two overlapping sections even
// when they are held in different rooms.
func (s *Section) CheckForConflict(other *Section) error {
	if other == nil {
		return shared.NewDomainError("enlistment", "CheckForConflict", shared.ErrNilReference,
			"section cannot be nil")
	}
	if s.schedule.ConflictsWith(other.schedule) {
		return shared.NewDomainError("enlistment", "CheckForConflict", shared.ErrScheduleConflict,
			fmt.Sprintf("section %s at %s overlaps section %s at %s",
				s.id, s.schedule, other.id, other.schedule))
	}
	return nil
}

// HasSameSubject reports whether both sections offer the same subject.
func (s *Section) HasSameSubject(other *Section) bool {
	if other == nil {
		return false
	}
	return s.subject.Equal(other.subject)
}

// CheckPrerequisites verifies the student's taken subjects against the
// section's subject prerequisites.
func (s *Section) CheckPrerequisites(subjectsTaken []*catalog.Subject) error {
	return s.subject.CheckPrerequisites(subjectsTaken)
}

// IncrementEnlisted admits one more enlistee after the room capacity check.
// The check and the increment are one atomic unit: concurrent callers racing
// on the same section cannot both observe under-capacity and push the count
// past the room's maximum.
func (s *Section) IncrementEnlisted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.room.CheckOverCapacity(s.enlisted); err != nil {
		return err
	}
	s.enlisted++
	return nil
}

// String returns the section id.
func (s *Section) String() string {
	return s.id.String()
}

// SectionGroup is the registry of all sections offered in a term. It exists
// for one rule: no two sections may occupy the same room at overlapping
// schedules. The scan and the insert run behind one mutex so concurrent
// registrations cannot slip a conflicting pair past each other.
//
// The registry is append-only; sections are never removed within a session.
type SectionGroup struct {
	mu       sync.Mutex
	sections map[shared.SectionID]*Section
}

// NewSectionGroup creates an empty section group.
func NewSectionGroup() *SectionGroup {
	return &SectionGroup{sections: make(map[shared.SectionID]*Section)}
}

// Register scans every already-registered section for a room-plus-schedule
// conflict with the new section and, finding none, adds it to the group.
// A section whose schedule overlaps an existing section in a different room
// is permitted; the same room at an overlapping schedule is not.
func (g *SectionGroup) Register(section *Section) error {
	if section == nil {
		return shared.NewDomainError("enlistment", "Register", shared.ErrNilReference,
			"section cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.sections[section.id]; exists {
		return shared.NewDomainError("enlistment", "Register", shared.ErrAlreadyExists,
			fmt.Sprintf("section %s is already registered", section.id))
	}
	for _, other := range g.sections {
		if section.schedule.ConflictsWith(other.schedule) && section.room.Equal(other.room) {
			return shared.NewDomainError("enlistment", "Register", shared.ErrScheduleRoomConflict,
				fmt.Sprintf("section %s overlaps section %s in room %s at %s",
					section.id, other.id, other.room, other.schedule))
		}
	}
	g.sections[section.id] = section
	return nil
}

// Sections returns a snapshot of the registered sections sorted by id.
// Mutating the returned slice never affects the group.
func (g *SectionGroup) Sections() []*Section {
	g.mu.Lock()
	defer g.mu.Unlock()
	sections := make([]*Section, 0, len(g.sections))
	for _, section := range g.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].id < sections[j].id })
	return sections
}

// Len returns the number of registered sections.
func (g *SectionGroup) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sections)
}
