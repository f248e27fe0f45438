package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

const subjectsCSV = `id,units,laboratory,prerequisites
CCPROG1,3,true,
CCPROG2,3,true,CCPROG1
MTH101A,3,false,
NSTP1,0,false,
`

const roomsCSV = `name,capacity
X,2
AG1706,45
`

const programsCSV = `name,subjects
BSCS,CCPROG1|CCPROG2|MTH101A
BSIT,CCPROG1|NSTP1
`

const sectionsCSV = `id,subject,room,days,start,end
A,CCPROG1,X,MTH,830,1000
B,CCPROG1,AG1706,MTH,830,1000
C,MTH101A,X,TF,1000,1130
`

const studentsCSV = `student_no,program,taken
1,BSCS,
2,BSCS,CCPROG1
`

const requestsCSV = `student_no,action,section
1,enlist,A
1,Cancel,A
2,assess,
`

func testLoader() *Loader {
	return NewLoader(nil)
}

func loadTestSubjects(t *testing.T) map[shared.SubjectID]*catalog.Subject {
	t.Helper()
	subjects, err := testLoader().LoadSubjects(strings.NewReader(subjectsCSV))
	require.NoError(t, err)
	return subjects
}

func loadTestRooms(t *testing.T) map[shared.RoomName]*catalog.Room {
	t.Helper()
	rooms, err := testLoader().LoadRooms(strings.NewReader(roomsCSV))
	require.NoError(t, err)
	return rooms
}

func TestLoader_LoadSubjects(t *testing.T) {
	subjects := loadTestSubjects(t)
	require.Len(t, subjects, 4)

	prog2 := subjects["CCPROG2"]
	require.NotNil(t, prog2)
	assert.True(t, prog2.IsLaboratory())
	require.Len(t, prog2.Prerequisites(), 1)
	assert.Equal(t, shared.SubjectID("CCPROG1"), prog2.Prerequisites()[0].ID())

	assert.Equal(t, shared.Units(0), subjects["NSTP1"].Units())
}

func TestLoader_LoadSubjects_ForwardReference(t *testing.T) {
	csv := `id,units,laboratory,prerequisites
CCPROG2,3,true,CCPROG1
CCPROG1,3,true,
`
	_, err := testLoader().LoadSubjects(strings.NewReader(csv))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLoader_LoadSubjects_Duplicate(t *testing.T) {
	csv := `id,units,laboratory,prerequisites
CCPROG1,3,true,
CCPROG1,3,true,
`
	_, err := testLoader().LoadSubjects(strings.NewReader(csv))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestLoader_LoadRooms(t *testing.T) {
	rooms := loadTestRooms(t)
	require.Len(t, rooms, 2)
	assert.Equal(t, 45, rooms["AG1706"].MaxCapacity())

	csv := `name,capacity
X,0
`
	_, err := testLoader().LoadRooms(strings.NewReader(csv))
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestLoader_LoadPrograms(t *testing.T) {
	subjects := loadTestSubjects(t)

	programs, err := testLoader().LoadPrograms(strings.NewReader(programsCSV), subjects)
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Len(t, programs["BSCS"].Subjects(), 3)
	assert.True(t, programs["BSIT"].Contains(subjects["NSTP1"]))

	csv := `name,subjects
BSCS,NOSUCH
`
	_, err = testLoader().LoadPrograms(strings.NewReader(csv), subjects)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLoader_LoadSections(t *testing.T) {
	subjects := loadTestSubjects(t)
	rooms := loadTestRooms(t)

	t.Run("valid sections registered into group", func(t *testing.T) {
		group := enlistment.NewSectionGroup()
		sections, err := testLoader().LoadSections(strings.NewReader(sectionsCSV), subjects, rooms, group)
		require.NoError(t, err)
		require.Len(t, sections, 3)
		assert.Equal(t, 3, group.Len())
		assert.Equal(t, "MTH 08:30 - 10:00", sections[0].Schedule().String())
	})

	t.Run("room conflict fails the load", func(t *testing.T) {
		csv := `id,subject,room,days,start,end
A,CCPROG1,X,MTH,830,1000
B,MTH101A,X,MTH,930,1100
`
		group := enlistment.NewSectionGroup()
		_, err := testLoader().LoadSections(strings.NewReader(csv), subjects, rooms, group)
		assert.ErrorIs(t, err, shared.ErrScheduleRoomConflict)
	})

	t.Run("unknown room", func(t *testing.T) {
		csv := `id,subject,room,days,start,end
A,CCPROG1,NOSUCH,MTH,830,1000
`
		group := enlistment.NewSectionGroup()
		_, err := testLoader().LoadSections(strings.NewReader(csv), subjects, rooms, group)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid period", func(t *testing.T) {
		csv := `id,subject,room,days,start,end
A,CCPROG1,X,MTH,845,1000
`
		group := enlistment.NewSectionGroup()
		_, err := testLoader().LoadSections(strings.NewReader(csv), subjects, rooms, group)
		assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
	})
}

func TestLoader_LoadStudents(t *testing.T) {
	subjects := loadTestSubjects(t)
	programs, err := testLoader().LoadPrograms(strings.NewReader(programsCSV), subjects)
	require.NoError(t, err)

	students, err := testLoader().LoadStudents(strings.NewReader(studentsCSV), programs, subjects)
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, shared.StudentNo(1), students[0].StudentNo())
	assert.Empty(t, students[0].SubjectsTaken())

	require.Len(t, students[1].SubjectsTaken(), 1)
	assert.Equal(t, shared.SubjectID("CCPROG1"), students[1].SubjectsTaken()[0].ID())

	csv := `student_no,program,taken
3,NOSUCH,
`
	_, err = testLoader().LoadStudents(strings.NewReader(csv), programs, subjects)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLoader_LoadRequests(t *testing.T) {
	requests, err := testLoader().LoadRequests(strings.NewReader(requestsCSV))
	require.NoError(t, err)
	require.Len(t, requests, 3)

	assert.Equal(t, Request{StudentNo: 1, Action: ActionEnlist, SectionID: "A"}, requests[0])
	// Actions are case-insensitive.
	assert.Equal(t, ActionCancel, requests[1].Action)
	assert.Equal(t, Request{StudentNo: 2, Action: ActionAssess}, requests[2])
}

func TestLoader_LoadRequests_Invalid(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		csv := `student_no,action,section
1,drop,A
`
		_, err := testLoader().LoadRequests(strings.NewReader(csv))
		assert.ErrorIs(t, err, shared.ErrInvalidFormat)
	})

	t.Run("enlist without section", func(t *testing.T) {
		csv := `student_no,action,section
1,enlist,
`
		_, err := testLoader().LoadRequests(strings.NewReader(csv))
		assert.ErrorIs(t, err, shared.ErrEmptyValue)
	})
}
