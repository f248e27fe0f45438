package enlistment

import (
	"fmt"
	"sort"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// MaxUnitsPerStudent is the cumulative unit load a student may enlist in one
// term. Enlisting exactly up to the cap succeeds; the first unit past it is
// rejected.
const MaxUnitsPerStudent shared.Units = 24

// Student is the aggregate root of an enlistment session. It holds the
// student's enrolled sections, academic history, and degree program, and is
// mutated only through Enlist and CancelEnlistment.
//
// A Student is created once per session and is private to that session; it is
// not safe for concurrent use and is not meant to be.
type Student struct {
	studentNo     shared.StudentNo
	degreeProgram *catalog.DegreeProgram
	sections      map[shared.SectionID]*Section
	subjectsTaken map[shared.SubjectID]*catalog.Subject
	totalUnits    shared.Units
}

// NewStudentParams contains the data to construct a Student.
type NewStudentParams struct {
	// StudentNo is the student number; must be non-negative.
	StudentNo int

	// DegreeProgram is the program the student is admitted to. Required.
	DegreeProgram *catalog.DegreeProgram

	// EnrolledSections optionally seeds the student with sections already
	// enrolled in (for example when resuming a session). Nil entries are
	// rejected.
	EnrolledSections []*Section

	// SubjectsTaken is the student's academic history. Nil entries are
	// filtered out.
	SubjectsTaken []*catalog.Subject
}

// NewStudent creates a student for one enlistment session.
func NewStudent(params NewStudentParams) (*Student, error) {
	studentNo, err := shared.NewStudentNo(params.StudentNo)
	if err != nil {
		return nil, err
	}
	if params.DegreeProgram == nil {
		return nil, shared.NewDomainError("enlistment", "NewStudent", shared.ErrNilReference,
			"degree program cannot be nil")
	}

	student := &Student{
		studentNo:     studentNo,
		degreeProgram: params.DegreeProgram,
		sections:      make(map[shared.SectionID]*Section),
		subjectsTaken: make(map[shared.SubjectID]*catalog.Subject, len(params.SubjectsTaken)),
	}
	for _, subject := range params.SubjectsTaken {
		if subject != nil {
			student.subjectsTaken[subject.ID()] = subject
		}
	}
	for _, section := range params.EnrolledSections {
		if section == nil {
			return nil, shared.NewDomainError("enlistment", "NewStudent", shared.ErrNilReference,
				"enrolled sections cannot contain nil entries")
		}
		student.sections[section.ID()] = section
		student.totalUnits = student.totalUnits.Add(section.Subject().Units())
	}
	return student, nil
}

// StudentNo returns the student number.
func (s *Student) StudentNo() shared.StudentNo {
	return s.studentNo
}

// DegreeProgram returns the student's degree program.
func (s *Student) DegreeProgram() *catalog.DegreeProgram {
	return s.degreeProgram
}

// TotalUnitsEnlisted returns the running unit load of the session.
func (s *Student) TotalUnitsEnlisted() shared.Units {
	return s.totalUnits
}

// Sections returns a snapshot of the student's enrolled sections sorted by
// id. Mutating the returned slice never affects the student.
func (s *Student) Sections() []*Section {
	sections := make([]*Section, 0, len(s.sections))
	for _, section := range s.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID() < sections[j].ID() })
	return sections
}

// SubjectsTaken returns a snapshot of the student's academic history sorted by
// subject id. Mutating the returned slice never affects the student.
func (s *Student) SubjectsTaken() []*catalog.Subject {
	subjects := make([]*catalog.Subject, 0, len(s.subjectsTaken))
	for _, subject := range s.subjectsTaken {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID() < subjects[j].ID() })
	return subjects
}

// IsEnlistedIn reports whether the student currently holds the section.
func (s *Student) IsEnlistedIn(section *Section) bool {
	if section == nil {
		return false
	}
	_, ok := s.sections[section.ID()]
	return ok
}

// Enlist registers the student into the section. Guards run in a fixed order
// and any failure rejects the whole operation; the student's state changes
// only after every guard, including the room capacity check, has passed.
func (s *Student) Enlist(newSection *Section) error {
	if newSection == nil {
		return shared.NewDomainError("enlistment", "Enlist", shared.ErrNilReference,
			"section cannot be nil")
	}

	for _, enrolled := range s.sections {
		if err := enrolled.CheckForConflict(newSection); err != nil {
			return err
		}
	}

	if err := s.degreeProgram.CheckSubjectPartOfProgram(newSection.Subject()); err != nil {
		return err
	}

	if err := newSection.CheckPrerequisites(s.SubjectsTaken()); err != nil {
		return err
	}

	for _, enrolled := range s.sections {
		if enrolled.HasSameSubject(newSection) {
			return shared.NewDomainError("enlistment", "Enlist", shared.ErrDuplicateSubjectEnlistment,
				fmt.Sprintf("student %s is already enlisted in subject %s through section %s",
					s.studentNo, newSection.Subject(), enrolled.ID()))
		}
	}

	load := s.totalUnits.Add(newSection.Subject().Units())
	if load > MaxUnitsPerStudent {
		return shared.NewDomainError("enlistment", "Enlist", shared.ErrMaxUnitsLimitExceeded,
			fmt.Sprintf("enlisting %s would bring student %s to %d units, above the %d-unit cap",
				newSection.ID(), s.studentNo, load.Int(), MaxUnitsPerStudent.Int()))
	}

	// Commit. The capacity check-then-increment runs last: when the room is
	// full the section is not added to the student's load.
	if err := newSection.IncrementEnlisted(); err != nil {
		return err
	}
	s.sections[newSection.ID()] = newSection
	s.totalUnits = load
	return nil
}

// CancelEnlistment removes the section from the student's load. Cancelling a
// section the student does not hold fails with
// shared.ErrCancellingUnenlistedSection.
//
// Cancellation does not decrement the section's enlisted count or the
// student's running unit total.
// TODO: confirm with the registrar whether cancellation should release the
// room slot and the units; enlisted counts are append-only today.
func (s *Student) CancelEnlistment(section *Section) error {
	if section == nil {
		return shared.NewDomainError("enlistment", "CancelEnlistment", shared.ErrNilReference,
			"section cannot be nil")
	}
	if _, ok := s.sections[section.ID()]; !ok {
		return shared.NewDomainError("enlistment", "CancelEnlistment", shared.ErrCancellingUnenlistedSection,
			fmt.Sprintf("student %s is not enlisted in section %s", s.studentNo, section.ID()))
	}
	delete(s.sections, section.ID())
	return nil
}

// String returns the student number.
func (s *Student) String() string {
	return s.studentNo.String()
}
