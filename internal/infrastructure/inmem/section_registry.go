package inmem

import (
	"fmt"
	"sort"
	"sync"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// SectionRegistry is an in-memory enlistment.SectionRegistry.
//
// It resolves ids to sections for the application layer; the room-conflict
// rule itself stays with enlistment.SectionGroup, which is the authoritative
// registry for that check.
type SectionRegistry struct {
	mu       sync.RWMutex
	sections map[shared.SectionID]*enlistment.Section
}

// NewSectionRegistry creates an empty section registry.
func NewSectionRegistry() *SectionRegistry {
	return &SectionRegistry{sections: make(map[shared.SectionID]*enlistment.Section)}
}

// Add stores a section, rejecting duplicates by id.
func (r *SectionRegistry) Add(section *enlistment.Section) error {
	if section == nil {
		return shared.NewDomainError("inmem", "Add", shared.ErrNilReference, "section cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := section.ID()
	if _, exists := r.sections[id]; exists {
		return shared.NewDomainError("inmem", "Add", shared.ErrAlreadyExists,
			fmt.Sprintf("section %s is already registered", id))
	}
	r.sections[id] = section
	return nil
}

// Get returns the section with the given id.
func (r *SectionRegistry) Get(id shared.SectionID) (*enlistment.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	section, ok := r.sections[id]
	if !ok {
		return nil, shared.NewDomainError("inmem", "Get", shared.ErrNotFound,
			fmt.Sprintf("section %s not found", id))
	}
	return section, nil
}

// All returns a snapshot of all sections sorted by id.
func (r *SectionRegistry) All() []*enlistment.Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sections := make([]*enlistment.Section, 0, len(r.sections))
	for _, section := range r.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID() < sections[j].ID() })
	return sections
}
