package enlistment

import "github.com/registrar-hub/enlistment/internal/domain/shared"

// Registry interfaces consumed by the application layer. Implementations live
// in infrastructure; for a single enlistment session an in-memory map is all
// that is needed.

// StudentRegistry holds the students taking part in an enlistment session.
type StudentRegistry interface {
	// Add stores a student. Fails with shared.ErrAlreadyExists when a student
	// with the same number is present.
	Add(student *Student) error

	// Get returns the student with the given number, or shared.ErrNotFound.
	Get(no shared.StudentNo) (*Student, error)

	// All returns a snapshot of all students, sorted by student number.
	All() []*Student
}

// SectionRegistry resolves section ids to sections offered in the term.
type SectionRegistry interface {
	// Add stores a section. Fails with shared.ErrAlreadyExists when a section
	// with the same id is present.
	Add(section *Section) error

	// Get returns the section with the given id, or shared.ErrNotFound.
	Get(id shared.SectionID) (*Section, error)

	// All returns a snapshot of all sections, sorted by id.
	All() []*Section
}
