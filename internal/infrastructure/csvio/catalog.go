package csvio

import (
	"fmt"
	"os"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Catalog is the fully loaded in-memory catalog for one enlistment term.
type Catalog struct {
	Subjects map[shared.SubjectID]*catalog.Subject
	Rooms    map[shared.RoomName]*catalog.Room
	Programs map[string]*catalog.DegreeProgram
	Group    *enlistment.SectionGroup
	Sections []*enlistment.Section
	Students []*enlistment.Student
}

// CatalogFiles names the CSV files a catalog is loaded from.
type CatalogFiles struct {
	Subjects string
	Rooms    string
	Programs string
	Sections string
	Students string
}

// LoadCatalog loads a complete catalog from the named files, in dependency
// order: subjects, rooms, programs, sections (registered into a fresh section
// group), then students.
func (l *Loader) LoadCatalog(files CatalogFiles) (*Catalog, error) {
	loaded := &Catalog{Group: enlistment.NewSectionGroup()}

	err := withFile(files.Subjects, func(f *os.File) error {
		subjects, err := l.LoadSubjects(f)
		loaded.Subjects = subjects
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Rooms, func(f *os.File) error {
		rooms, err := l.LoadRooms(f)
		loaded.Rooms = rooms
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Programs, func(f *os.File) error {
		programs, err := l.LoadPrograms(f, loaded.Subjects)
		loaded.Programs = programs
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Sections, func(f *os.File) error {
		sections, err := l.LoadSections(f, loaded.Subjects, loaded.Rooms, loaded.Group)
		loaded.Sections = sections
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Students, func(f *os.File) error {
		students, err := l.LoadStudents(f, loaded.Programs, loaded.Subjects)
		loaded.Students = students
		return err
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// withFile opens the file, runs fn, and closes it.
func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}
