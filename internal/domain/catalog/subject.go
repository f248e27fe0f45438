package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Subject is a catalog entry: an identifier, a unit count, a laboratory flag,
// and the set of subjects that must be taken before it. Identity is by id.
type Subject struct {
	id            shared.SubjectID
	units         shared.Units
	laboratory    bool
	prerequisites map[shared.SubjectID]*Subject
}

// NewSubject creates a subject. The id must be non-blank and alphanumeric,
// units must be non-negative, and the prerequisite list must not contain nil
// entries. Duplicate prerequisites collapse into one.
func NewSubject(id string, units int, laboratory bool, prerequisites ...*Subject) (*Subject, error) {
	subjectID, err := shared.NewSubjectID(id)
	if err != nil {
		return nil, err
	}
	unitCount, err := shared.NewUnits(units)
	if err != nil {
		return nil, err
	}
	prereqs := make(map[shared.SubjectID]*Subject, len(prerequisites))
	for _, prereq := range prerequisites {
		if prereq == nil {
			return nil, shared.NewDomainError("catalog", "NewSubject", shared.ErrNilReference,
				fmt.Sprintf("prerequisites of %s cannot contain nil subjects", subjectID))
		}
		prereqs[prereq.id] = prereq
	}
	return &Subject{
		id:            subjectID,
		units:         unitCount,
		laboratory:    laboratory,
		prerequisites: prereqs,
	}, nil
}

// ID returns the subject identifier.
func (s *Subject) ID() shared.SubjectID {
	return s.id
}

// Units returns the subject's unit count.
func (s *Subject) Units() shared.Units {
	return s.units
}

// IsLaboratory reports whether the subject carries the laboratory fee.
func (s *Subject) IsLaboratory() bool {
	return s.laboratory
}

// Prerequisites returns a snapshot of the prerequisite subjects. Mutating the
// returned slice never affects the subject.
func (s *Subject) Prerequisites() []*Subject {
	prereqs := make([]*Subject, 0, len(s.prerequisites))
	for _, prereq := range s.prerequisites {
		prereqs = append(prereqs, prereq)
	}
	sort.Slice(prereqs, func(i, j int) bool { return prereqs[i].id < prereqs[j].id })
	return prereqs
}

// Equal reports whether two subjects are the same catalog entry (same id).
func (s *Subject) Equal(other *Subject) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.id == other.id
}

// CheckPrerequisites verifies that every prerequisite appears in the given
// taken-subjects collection. On failure it returns an *UnmetPrerequisitesError
// listing the missing subject ids.
func (s *Subject) CheckPrerequisites(subjectsTaken []*Subject) error {
	taken := make(map[shared.SubjectID]struct{}, len(subjectsTaken))
	for _, subject := range subjectsTaken {
		if subject != nil {
			taken[subject.id] = struct{}{}
		}
	}

	var unmet []shared.SubjectID
	for id := range s.prerequisites {
		if _, ok := taken[id]; !ok {
			unmet = append(unmet, id)
		}
	}
	if len(unmet) == 0 {
		return nil
	}
	sort.Slice(unmet, func(i, j int) bool { return unmet[i] < unmet[j] })
	return &UnmetPrerequisitesError{SubjectID: s.id, Unmet: unmet}
}

// String returns the subject id.
func (s *Subject) String() string {
	return s.id.String()
}

// UnmetPrerequisitesError reports the prerequisite subjects missing from a
// student's academic history. It matches shared.ErrPrerequisitesNotMet under
// errors.Is.
type UnmetPrerequisitesError struct {
	// SubjectID is the subject whose prerequisites were not met.
	SubjectID shared.SubjectID

	// Unmet lists the missing prerequisite subject ids, sorted for stable
	// messages. Set semantics: order carries no meaning.
	Unmet []shared.SubjectID
}

// Error implements the error interface.
func (e *UnmetPrerequisitesError) Error() string {
	ids := make([]string, len(e.Unmet))
	for i, id := range e.Unmet {
		ids[i] = id.String()
	}
	return fmt.Sprintf("catalog.CheckPrerequisites: unmet prerequisites for %s: %s",
		e.SubjectID, strings.Join(ids, ", "))
}

// Unwrap makes the error match shared.ErrPrerequisitesNotMet (and therefore
// shared.ErrRuleViolation) under errors.Is.
func (e *UnmetPrerequisitesError) Unwrap() error {
	return shared.ErrPrerequisitesNotMet
}
