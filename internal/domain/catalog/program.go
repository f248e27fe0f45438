package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// DegreeProgram is the named set of subjects a student is authorized to enlist
// into. Identity is by name and subject set together: two programs with the
// same name but different subject sets are different programs.
type DegreeProgram struct {
	name     string
	subjects map[shared.SubjectID]*Subject
}

// NewDegreeProgram creates a degree program with a non-blank name. Nil entries
// in the subject list are filtered out; duplicates collapse into one.
func NewDegreeProgram(name string, subjects []*Subject) (*DegreeProgram, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("catalog", "NewDegreeProgram", shared.ErrEmptyValue,
			"degree program name cannot be blank")
	}
	subjectSet := make(map[shared.SubjectID]*Subject, len(subjects))
	for _, subject := range subjects {
		if subject != nil {
			subjectSet[subject.id] = subject
		}
	}
	return &DegreeProgram{name: trimmed, subjects: subjectSet}, nil
}

// Name returns the program name.
func (p *DegreeProgram) Name() string {
	return p.name
}

// Subjects returns a snapshot of the program's subjects sorted by id.
// Mutating the returned slice never affects the program.
func (p *DegreeProgram) Subjects() []*Subject {
	subjects := make([]*Subject, 0, len(p.subjects))
	for _, subject := range p.subjects {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].id < subjects[j].id })
	return subjects
}

// Contains reports whether the subject belongs to the program.
func (p *DegreeProgram) Contains(subject *Subject) bool {
	if subject == nil {
		return false
	}
	_, ok := p.subjects[subject.id]
	return ok
}

// CheckSubjectPartOfProgram fails when the subject is absent from the
// program's subject set.
func (p *DegreeProgram) CheckSubjectPartOfProgram(subject *Subject) error {
	if subject == nil {
		return shared.NewDomainError("catalog", "CheckSubjectPartOfProgram", shared.ErrNilReference,
			"subject cannot be nil")
	}
	if !p.Contains(subject) {
		return shared.NewDomainError("catalog", "CheckSubjectPartOfProgram", shared.ErrNotPartOfDegreeProgram,
			fmt.Sprintf("subject %s does not belong to degree program %s", subject.id, p.name))
	}
	return nil
}

// Equal reports whether two programs are the same: same name and same subject
// id set.
func (p *DegreeProgram) Equal(other *DegreeProgram) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.name != other.name || len(p.subjects) != len(other.subjects) {
		return false
	}
	for id := range p.subjects {
		if _, ok := other.subjects[id]; !ok {
			return false
		}
	}
	return true
}

// String returns the program name.
func (p *DegreeProgram) String() string {
	return p.name
}
