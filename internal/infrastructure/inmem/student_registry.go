// Package inmem provides mutex-guarded in-memory implementations of the
// domain registry interfaces. One registry instance backs one enlistment
// session; nothing is persisted.
package inmem

import (
	"fmt"
	"sort"
	"sync"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// StudentRegistry is an in-memory enlistment.StudentRegistry.
type StudentRegistry struct {
	mu       sync.RWMutex
	students map[shared.StudentNo]*enlistment.Student
}

// NewStudentRegistry creates an empty student registry.
func NewStudentRegistry() *StudentRegistry {
	return &StudentRegistry{students: make(map[shared.StudentNo]*enlistment.Student)}
}

// Add stores a student, rejecting duplicates by student number.
func (r *StudentRegistry) Add(student *enlistment.Student) error {
	if student == nil {
		return shared.NewDomainError("inmem", "Add", shared.ErrNilReference, "student cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	no := student.StudentNo()
	if _, exists := r.students[no]; exists {
		return shared.NewDomainError("inmem", "Add", shared.ErrAlreadyExists,
			fmt.Sprintf("student %s is already registered", no))
	}
	r.students[no] = student
	return nil
}

// Get returns the student with the given number.
func (r *StudentRegistry) Get(no shared.StudentNo) (*enlistment.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, ok := r.students[no]
	if !ok {
		return nil, shared.NewDomainError("inmem", "Get", shared.ErrNotFound,
			fmt.Sprintf("student %s not found", no))
	}
	return student, nil
}

// All returns a snapshot of all students sorted by student number.
func (r *StudentRegistry) All() []*enlistment.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]*enlistment.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].StudentNo() < students[j].StudentNo()
	})
	return students
}
