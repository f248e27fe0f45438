package query

import (
	"context"
	"errors"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT LOAD QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentLoadQuery identifies the student whose load is requested.
type GetStudentLoadQuery struct {
	// StudentNo identifies the student.
	StudentNo shared.StudentNo
}

// Validate validates the query.
func (q GetStudentLoadQuery) Validate() error {
	if !q.StudentNo.IsValid() {
		return errors.New("get_student_load: student_no must be non-negative")
	}
	return nil
}

// SectionLoad describes one enrolled section in a student's load.
type SectionLoad struct {
	SectionID  shared.SectionID
	SubjectID  shared.SubjectID
	Units      shared.Units
	Laboratory bool
	Schedule   string
	Room       shared.RoomName
}

// StudentLoad is the read model of a student's current enlistment.
type StudentLoad struct {
	StudentNo  shared.StudentNo
	Program    string
	Sections   []SectionLoad
	TotalUnits shared.Units
}

// GetStudentLoadHandler handles GetStudentLoadQuery.
type GetStudentLoadHandler struct {
	students enlistment.StudentRegistry
}

// NewGetStudentLoadHandler creates the handler.
func NewGetStudentLoadHandler(students enlistment.StudentRegistry) (*GetStudentLoadHandler, error) {
	if students == nil {
		return nil, errors.New("get_student_load: student registry is required")
	}
	return &GetStudentLoadHandler{students: students}, nil
}

// Handle executes the query.
func (h *GetStudentLoadHandler) Handle(ctx context.Context, q GetStudentLoadQuery) (StudentLoad, error) {
	if err := q.Validate(); err != nil {
		return StudentLoad{}, err
	}

	student, err := h.students.Get(q.StudentNo)
	if err != nil {
		return StudentLoad{}, err
	}

	sections := student.Sections()
	load := StudentLoad{
		StudentNo:  student.StudentNo(),
		Program:    student.DegreeProgram().Name(),
		Sections:   make([]SectionLoad, 0, len(sections)),
		TotalUnits: student.TotalUnitsEnlisted(),
	}
	for _, section := range sections {
		subject := section.Subject()
		load.Sections = append(load.Sections, SectionLoad{
			SectionID:  section.ID(),
			SubjectID:  subject.ID(),
			Units:      subject.Units(),
			Laboratory: subject.IsLaboratory(),
			Schedule:   section.Schedule().String(),
			Room:       section.Room().Name(),
		})
	}
	return load, nil
}
