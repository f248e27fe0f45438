package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-hub/enlistment/internal/domain/catalog"
	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
	"github.com/registrar-hub/enlistment/internal/infrastructure/inmem"
)

type capturingPublisher struct {
	events []shared.Event
}

func (p *capturingPublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

// seedStudent registers student no 1 enrolled in section "A" (3-unit
// laboratory subject) and returns the registry.
func seedStudent(t *testing.T) *inmem.StudentRegistry {
	t.Helper()

	subject, err := catalog.NewSubject("CCPROG1", 3, true)
	require.NoError(t, err)
	program, err := catalog.NewDegreeProgram("BSCS", []*catalog.Subject{subject})
	require.NoError(t, err)
	room, err := catalog.NewRoom("X", 10)
	require.NoError(t, err)
	schedule := catalog.MustNewSchedule(catalog.DaysMTH, catalog.MustNewPeriod(830, 1000))
	section, err := enlistment.NewSection("A", schedule, room, subject)
	require.NoError(t, err)
	student, err := enlistment.NewStudent(enlistment.NewStudentParams{
		StudentNo:     1,
		DegreeProgram: program,
	})
	require.NoError(t, err)
	require.NoError(t, student.Enlist(section))

	students := inmem.NewStudentRegistry()
	require.NoError(t, students.Add(student))
	return students
}

func TestRequestAssessmentHandler_Handle(t *testing.T) {
	students := seedStudent(t)
	publisher := &capturingPublisher{}
	handler, err := NewRequestAssessmentHandler(students, enlistment.DefaultFeeSchedule(), publisher, nil)
	require.NoError(t, err)

	assessment, err := handler.Handle(context.Background(), RequestAssessmentQuery{StudentNo: 1})
	require.NoError(t, err)

	// 3 units * 2000 + 1000 lab + 3000 misc = 10000; * 1.12 = 11200.
	assert.True(t, decimal.RequireFromString("11200.00").Equal(assessment.Total),
		"got %s", assessment.Total)
	assert.NotEmpty(t, assessment.Reference)
	require.Len(t, assessment.Lines, 1)
	assert.Equal(t, shared.SectionID("A"), assessment.Lines[0].SectionID)

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(enlistment.StudentAssessedEvent)
	require.True(t, ok)
	assert.Equal(t, assessment.Reference, event.Reference)
	assert.True(t, assessment.Total.Equal(event.Total))
}

func TestRequestAssessmentHandler_Handle_UnknownStudent(t *testing.T) {
	handler, err := NewRequestAssessmentHandler(
		inmem.NewStudentRegistry(), enlistment.DefaultFeeSchedule(), &capturingPublisher{}, nil)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), RequestAssessmentQuery{StudentNo: 99})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestNewRequestAssessmentHandler_Validation(t *testing.T) {
	students := inmem.NewStudentRegistry()

	_, err := NewRequestAssessmentHandler(nil, enlistment.DefaultFeeSchedule(), &capturingPublisher{}, nil)
	assert.Error(t, err)

	badFees := enlistment.DefaultFeeSchedule()
	badFees.MiscFee = decimal.NewFromInt(-1)
	_, err = NewRequestAssessmentHandler(students, badFees, &capturingPublisher{}, nil)
	assert.ErrorIs(t, err, shared.ErrNegativeValue)

	_, err = NewRequestAssessmentHandler(students, enlistment.DefaultFeeSchedule(), nil, nil)
	assert.Error(t, err)
}

func TestGetStudentLoadHandler_Handle(t *testing.T) {
	students := seedStudent(t)
	handler, err := NewGetStudentLoadHandler(students)
	require.NoError(t, err)

	load, err := handler.Handle(context.Background(), GetStudentLoadQuery{StudentNo: 1})
	require.NoError(t, err)

	assert.Equal(t, shared.StudentNo(1), load.StudentNo)
	assert.Equal(t, "BSCS", load.Program)
	assert.Equal(t, shared.Units(3), load.TotalUnits)
	require.Len(t, load.Sections, 1)
	assert.Equal(t, SectionLoad{
		SectionID:  "A",
		SubjectID:  "CCPROG1",
		Units:      3,
		Laboratory: true,
		Schedule:   "MTH 08:30 - 10:00",
		Room:       "X",
	}, load.Sections[0])
}

func TestGetStudentLoadHandler_Handle_UnknownStudent(t *testing.T) {
	handler, err := NewGetStudentLoadHandler(inmem.NewStudentRegistry())
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), GetStudentLoadQuery{StudentNo: 99})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
