package enlistment

import (
	"github.com/shopspring/decimal"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Domain events published after an aggregate commits a state change. Rejected
// operations never produce events.

// SectionRegisteredEvent - a section passed the room-conflict scan and joined
// the term's section group.
type SectionRegisteredEvent struct {
	shared.BaseEvent
	SectionID shared.SectionID
	SubjectID shared.SubjectID
	Room      shared.RoomName
	Schedule  string
}

// NewSectionRegisteredEvent creates the registration event for a section.
func NewSectionRegisteredEvent(section *Section) SectionRegisteredEvent {
	return SectionRegisteredEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventSectionRegistered, section.ID().String()),
		SectionID: section.ID(),
		SubjectID: section.Subject().ID(),
		Room:      section.Room().Name(),
		Schedule:  section.Schedule().String(),
	}
}

// SectionEnlistedEvent - a student successfully enlisted into a section.
type SectionEnlistedEvent struct {
	shared.BaseEvent
	StudentNo  shared.StudentNo
	SectionID  shared.SectionID
	SubjectID  shared.SubjectID
	Units      shared.Units
	TotalUnits shared.Units
	Enlisted   int
}

// NewSectionEnlistedEvent creates the enlistment event for a student and the
// section they joined.
func NewSectionEnlistedEvent(student *Student, section *Section) SectionEnlistedEvent {
	return SectionEnlistedEvent{
		BaseEvent:  shared.NewBaseEvent(shared.EventSectionEnlisted, student.StudentNo().String()),
		StudentNo:  student.StudentNo(),
		SectionID:  section.ID(),
		SubjectID:  section.Subject().ID(),
		Units:      section.Subject().Units(),
		TotalUnits: student.TotalUnitsEnlisted(),
		Enlisted:   section.Enlisted(),
	}
}

// EnlistmentCanceledEvent - a student cancelled an enlisted section.
type EnlistmentCanceledEvent struct {
	shared.BaseEvent
	StudentNo shared.StudentNo
	SectionID shared.SectionID
	SubjectID shared.SubjectID
}

// NewEnlistmentCanceledEvent creates the cancellation event.
func NewEnlistmentCanceledEvent(student *Student, section *Section) EnlistmentCanceledEvent {
	return EnlistmentCanceledEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventEnlistmentCanceled, student.StudentNo().String()),
		StudentNo: student.StudentNo(),
		SectionID: section.ID(),
		SubjectID: section.Subject().ID(),
	}
}

// StudentAssessedEvent - a tuition assessment was computed for a student.
type StudentAssessedEvent struct {
	shared.BaseEvent
	StudentNo shared.StudentNo
	Reference string
	Sections  int
	Total     decimal.Decimal
}

// NewStudentAssessedEvent creates the assessment event.
func NewStudentAssessedEvent(student *Student, assessment Assessment) StudentAssessedEvent {
	return StudentAssessedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStudentAssessed, student.StudentNo().String()),
		StudentNo: student.StudentNo(),
		Reference: assessment.Reference,
		Sections:  len(assessment.Lines),
		Total:     assessment.Total,
	}
}
