// Package csvio loads catalog data (subjects, rooms, degree programs,
// sections) and enlistment requests from CSV files. Every row is built
// through the domain's validating constructors, so a malformed catalog fails
// at load time rather than mid-session.
package csvio

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// listSeparator separates multi-valued cells (prerequisites, program subjects).
const listSeparator = "|"

type subjectRow struct {
	ID            string `csv:"id"`
	Units         int    `csv:"units"`
	Laboratory    bool   `csv:"laboratory"`
	Prerequisites string `csv:"prerequisites"`
}

type roomRow struct {
	Name     string `csv:"name"`
	Capacity int    `csv:"capacity"`
}

type programRow struct {
	Name     string `csv:"name"`
	Subjects string `csv:"subjects"`
}

type sectionRow struct {
	ID      string `csv:"id"`
	Subject string `csv:"subject"`
	Room    string `csv:"room"`
	Days    string `csv:"days"`
	Start   int    `csv:"start"`
	End     int    `csv:"end"`
}

type studentRow struct {
	StudentNo int    `csv:"student_no"`
	Program   string `csv:"program"`
	Taken     string `csv:"taken"`
}

type requestRow struct {
	StudentNo int    `csv:"student_no"`
	Action    string `csv:"action"`
	Section   string `csv:"section"`
}

// RequestAction is the kind of enlistment request in a requests file.
type RequestAction string

const (
	// ActionEnlist - enlist the student into the section.
	ActionEnlist RequestAction = "enlist"
	// ActionCancel - cancel the student's enlistment in the section.
	ActionCancel RequestAction = "cancel"
	// ActionAssess - compute the student's tuition assessment.
	ActionAssess RequestAction = "assess"
)

// Request is one parsed row of an enlistment-requests file.
type Request struct {
	StudentNo shared.StudentNo
	Action    RequestAction
	SectionID shared.SectionID
}

// Loader reads catalog CSVs into domain objects.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadSubjects parses subject rows (id, units, laboratory, prerequisites).
// Prerequisites reference earlier rows by id, separated by "|"; a forward or
// unknown reference is an error.
func (l *Loader) LoadSubjects(r io.Reader) (map[shared.SubjectID]*catalog.Subject, error) {
	var rows []*subjectRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadSubjects", shared.ErrInvalidFormat,
			"failed to parse subjects file", err)
	}

	subjects := make(map[shared.SubjectID]*catalog.Subject, len(rows))
	for i, row := range rows {
		prereqs, err := l.resolveSubjects(row.Prerequisites, subjects)
		if err != nil {
			return nil, shared.WrapError("csvio", "LoadSubjects", shared.ErrInvalidFormat,
				fmt.Sprintf("subject %q (row %d): prerequisite must be declared on an earlier row", row.ID, i+1), err)
		}
		subject, err := catalog.NewSubject(row.ID, row.Units, row.Laboratory, prereqs...)
		if err != nil {
			return nil, fmt.Errorf("subjects row %d: %w", i+1, err)
		}
		if _, exists := subjects[subject.ID()]; exists {
			return nil, shared.NewDomainError("csvio", "LoadSubjects", shared.ErrAlreadyExists,
				fmt.Sprintf("duplicate subject id %s on row %d", subject.ID(), i+1))
		}
		subjects[subject.ID()] = subject
	}
	l.logger.Debug("loaded subjects", "count", len(subjects))
	return subjects, nil
}

// LoadRooms parses room rows (name, capacity).
func (l *Loader) LoadRooms(r io.Reader) (map[shared.RoomName]*catalog.Room, error) {
	var rows []*roomRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadRooms", shared.ErrInvalidFormat,
			"failed to parse rooms file", err)
	}

	rooms := make(map[shared.RoomName]*catalog.Room, len(rows))
	for i, row := range rows {
		room, err := catalog.NewRoom(row.Name, row.Capacity)
		if err != nil {
			return nil, fmt.Errorf("rooms row %d: %w", i+1, err)
		}
		if _, exists := rooms[room.Name()]; exists {
			return nil, shared.NewDomainError("csvio", "LoadRooms", shared.ErrAlreadyExists,
				fmt.Sprintf("duplicate room %s on row %d", room.Name(), i+1))
		}
		rooms[room.Name()] = room
	}
	l.logger.Debug("loaded rooms", "count", len(rooms))
	return rooms, nil
}

// LoadPrograms parses degree program rows (name, subjects). Subjects reference
// loaded subject ids separated by "|".
func (l *Loader) LoadPrograms(r io.Reader, subjects map[shared.SubjectID]*catalog.Subject) (map[string]*catalog.DegreeProgram, error) {
	var rows []*programRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadPrograms", shared.ErrInvalidFormat,
			"failed to parse programs file", err)
	}

	programs := make(map[string]*catalog.DegreeProgram, len(rows))
	for i, row := range rows {
		members, err := l.resolveSubjects(row.Subjects, subjects)
		if err != nil {
			return nil, shared.WrapError("csvio", "LoadPrograms", shared.ErrInvalidFormat,
				fmt.Sprintf("program %q (row %d) references unknown subject", row.Name, i+1), err)
		}
		program, err := catalog.NewDegreeProgram(row.Name, members)
		if err != nil {
			return nil, fmt.Errorf("programs row %d: %w", i+1, err)
		}
		if _, exists := programs[program.Name()]; exists {
			return nil, shared.NewDomainError("csvio", "LoadPrograms", shared.ErrAlreadyExists,
				fmt.Sprintf("duplicate program %q on row %d", program.Name(), i+1))
		}
		programs[program.Name()] = program
	}
	l.logger.Debug("loaded degree programs", "count", len(programs))
	return programs, nil
}

// LoadSections parses section rows (id, subject, room, days, start, end),
// registering each section into the given group. A section that fails the
// group's room-conflict scan fails the whole load.
func (l *Loader) LoadSections(
	r io.Reader,
	subjects map[shared.SubjectID]*catalog.Subject,
	rooms map[shared.RoomName]*catalog.Room,
	group *enlistment.SectionGroup,
) ([]*enlistment.Section, error) {
	var rows []*sectionRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadSections", shared.ErrInvalidFormat,
			"failed to parse sections file", err)
	}

	sections := make([]*enlistment.Section, 0, len(rows))
	for i, row := range rows {
		subject, ok := subjects[shared.SubjectID(strings.TrimSpace(row.Subject))]
		if !ok {
			return nil, shared.NewDomainError("csvio", "LoadSections", shared.ErrNotFound,
				fmt.Sprintf("section %q (row %d) references unknown subject %q", row.ID, i+1, row.Subject))
		}
		room, ok := rooms[shared.RoomName(strings.TrimSpace(row.Room))]
		if !ok {
			return nil, shared.NewDomainError("csvio", "LoadSections", shared.ErrNotFound,
				fmt.Sprintf("section %q (row %d) references unknown room %q", row.ID, i+1, row.Room))
		}
		days, err := catalog.ParseDayGroup(row.Days)
		if err != nil {
			return nil, fmt.Errorf("sections row %d: %w", i+1, err)
		}
		period, err := catalog.NewPeriod(row.Start, row.End)
		if err != nil {
			return nil, fmt.Errorf("sections row %d: %w", i+1, err)
		}
		schedule, err := catalog.NewSchedule(days, period)
		if err != nil {
			return nil, fmt.Errorf("sections row %d: %w", i+1, err)
		}
		section, err := enlistment.NewSectionInGroup(row.ID, schedule, room, subject, group)
		if err != nil {
			return nil, fmt.Errorf("sections row %d: %w", i+1, err)
		}
		sections = append(sections, section)
	}
	l.logger.Debug("loaded sections", "count", len(sections))
	return sections, nil
}

// LoadStudents parses student rows (student_no, program, taken) into Student
// aggregates. Taken subjects reference loaded subject ids separated by "|".
func (l *Loader) LoadStudents(
	r io.Reader,
	programs map[string]*catalog.DegreeProgram,
	subjects map[shared.SubjectID]*catalog.Subject,
) ([]*enlistment.Student, error) {
	var rows []*studentRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadStudents", shared.ErrInvalidFormat,
			"failed to parse students file", err)
	}

	students := make([]*enlistment.Student, 0, len(rows))
	for i, row := range rows {
		program, ok := programs[strings.TrimSpace(row.Program)]
		if !ok {
			return nil, shared.NewDomainError("csvio", "LoadStudents", shared.ErrNotFound,
				fmt.Sprintf("student %d (row %d) references unknown program %q", row.StudentNo, i+1, row.Program))
		}
		taken, err := l.resolveSubjects(row.Taken, subjects)
		if err != nil {
			return nil, shared.WrapError("csvio", "LoadStudents", shared.ErrInvalidFormat,
				fmt.Sprintf("student %d (row %d) references unknown taken subject", row.StudentNo, i+1), err)
		}
		student, err := enlistment.NewStudent(enlistment.NewStudentParams{
			StudentNo:     row.StudentNo,
			DegreeProgram: program,
			SubjectsTaken: taken,
		})
		if err != nil {
			return nil, fmt.Errorf("students row %d: %w", i+1, err)
		}
		students = append(students, student)
	}
	l.logger.Debug("loaded students", "count", len(students))
	return students, nil
}

// LoadRequests parses enlistment request rows (student_no, action, section).
// The section cell may be empty for assess requests.
func (l *Loader) LoadRequests(r io.Reader) ([]Request, error) {
	var rows []*requestRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, shared.WrapError("csvio", "LoadRequests", shared.ErrInvalidFormat,
			"failed to parse requests file", err)
	}

	requests := make([]Request, 0, len(rows))
	for i, row := range rows {
		studentNo, err := shared.NewStudentNo(row.StudentNo)
		if err != nil {
			return nil, fmt.Errorf("requests row %d: %w", i+1, err)
		}
		action := RequestAction(strings.ToLower(strings.TrimSpace(row.Action)))
		switch action {
		case ActionEnlist, ActionCancel:
			if strings.TrimSpace(row.Section) == "" {
				return nil, shared.NewDomainError("csvio", "LoadRequests", shared.ErrEmptyValue,
					fmt.Sprintf("requests row %d: section is required for %s", i+1, action))
			}
		case ActionAssess:
			// No section needed.
		default:
			return nil, shared.NewDomainError("csvio", "LoadRequests", shared.ErrInvalidFormat,
				fmt.Sprintf("requests row %d: unknown action %q", i+1, row.Action))
		}
		request := Request{StudentNo: studentNo, Action: action}
		if action != ActionAssess {
			sectionID, err := shared.NewSectionID(row.Section)
			if err != nil {
				return nil, fmt.Errorf("requests row %d: %w", i+1, err)
			}
			request.SectionID = sectionID
		}
		requests = append(requests, request)
	}
	l.logger.Debug("loaded requests", "count", len(requests))
	return requests, nil
}

// resolveSubjects splits a "|"-separated id list and resolves each id against
// the known subjects. An empty cell resolves to no subjects.
func (l *Loader) resolveSubjects(cell string, known map[shared.SubjectID]*catalog.Subject) ([]*catalog.Subject, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	parts := strings.Split(cell, listSeparator)
	subjects := make([]*catalog.Subject, 0, len(parts))
	for _, part := range parts {
		id := shared.SubjectID(strings.TrimSpace(part))
		subject, ok := known[id]
		if !ok {
			return nil, shared.NewDomainError("csvio", "resolveSubjects", shared.ErrNotFound,
				fmt.Sprintf("unknown subject id %q", part))
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
