package enlistment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

func TestFeeSchedule_Validate(t *testing.T) {
	valid := DefaultFeeSchedule()
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.LabFee = decimal.NewFromInt(-1)
	assert.ErrorIs(t, negative.Validate(), shared.ErrNegativeValue)

	zeroVAT := valid
	zeroVAT.VATMultiplier = decimal.Zero
	assert.ErrorIs(t, zeroVAT.Validate(), shared.ErrValueOutOfRange)
}

func TestStudent_RequestAssessment_NoSections(t *testing.T) {
	student := studentWith(t)
	// Misc fee alone, with VAT: 3000 * 1.12.
	assertDecimalEqual(t, "3360.00", student.RequestAssessment())
}

func TestStudent_RequestAssessment_TwoNonLabSections(t *testing.T) {
	subjectA := mustSubject(t, "SUBA", 2, false)
	subjectB := mustSubject(t, "SUBB", 2, false)
	student := studentWith(t, subjectA, subjectB)

	room := mustRoom(t, "X", 10)
	require.NoError(t, student.Enlist(mustSection(t, "A", mthMorning, room, subjectA)))
	require.NoError(t, student.Enlist(mustSection(t, "B", tfMorning, room, subjectB)))

	// (2 + 2 units) * 2000 + 3000 misc = 11000; * 1.12 = 12320.
	assertDecimalEqual(t, "12320.00", student.RequestAssessment())
}

func TestStudent_RequestAssessment_TwoLabSections(t *testing.T) {
	subjectA := mustSubject(t, "SUBA", 3, true)
	subjectB := mustSubject(t, "SUBB", 3, true)
	student := studentWith(t, subjectA, subjectB)

	room := mustRoom(t, "X", 10)
	require.NoError(t, student.Enlist(mustSection(t, "A", mthMorning, room, subjectA)))
	require.NoError(t, student.Enlist(mustSection(t, "B", tfMorning, room, subjectB)))

	// (3 + 3 units) * 2000 + 2 lab fees + 3000 misc = 17000; * 1.12 = 19040.
	assertDecimalEqual(t, "19040.00", student.RequestAssessment())
}

func TestStudent_RequestAssessment_MixedSections(t *testing.T) {
	nonLab2 := mustSubject(t, "SUBA", 2, false)
	nonLab3 := mustSubject(t, "SUBB", 3, false)
	lab2 := mustSubject(t, "SUBC", 2, true)
	student := studentWith(t, nonLab2, nonLab3, lab2)

	room := mustRoom(t, "X", 10)
	require.NoError(t, student.Enlist(mustSection(t, "A", mthMorning, room, nonLab2)))
	require.NoError(t, student.Enlist(mustSection(t, "B", tfMorning, room, nonLab3)))
	require.NoError(t, student.Enlist(mustSection(t, "C", wsMorning, room, lab2)))

	// 7 units * 2000 + 1000 lab + 3000 misc = 18000; * 1.12 = 20160.
	assertDecimalEqual(t, "20160.00", student.RequestAssessment())
}

func TestStudent_Assess_Breakdown(t *testing.T) {
	nonLab := mustSubject(t, "SUBA", 2, false)
	lab := mustSubject(t, "SUBB", 3, true)
	student := studentWith(t, nonLab, lab)

	room := mustRoom(t, "X", 10)
	require.NoError(t, student.Enlist(mustSection(t, "B", mthMorning, room, nonLab)))
	require.NoError(t, student.Enlist(mustSection(t, "A", tfMorning, room, lab)))

	assessment := student.Assess(DefaultFeeSchedule())

	assert.NotEmpty(t, assessment.Reference)
	assert.Equal(t, student.StudentNo(), assessment.StudentNo)
	assert.False(t, assessment.AssessedAt.IsZero())

	// Lines come back sorted by section id.
	require.Len(t, assessment.Lines, 2)
	assert.Equal(t, shared.SectionID("A"), assessment.Lines[0].SectionID)
	assert.True(t, assessment.Lines[0].Laboratory)
	assertDecimalEqual(t, "7000", assessment.Lines[0].Amount)
	assert.Equal(t, shared.SectionID("B"), assessment.Lines[1].SectionID)
	assertDecimalEqual(t, "4000", assessment.Lines[1].Amount)

	assertDecimalEqual(t, "14000", assessment.Subtotal)
	assertDecimalEqual(t, "15680.00", assessment.Total)
}

func TestStudent_Assess_CustomFeeSchedule(t *testing.T) {
	subject := mustSubject(t, "SUBA", 3, false)
	student := studentWith(t, subject)
	require.NoError(t, student.Enlist(mustSection(t, "A", mthMorning, mustRoom(t, "X", 10), subject)))

	fees := FeeSchedule{
		PerUnit:       decimal.NewFromInt(1500),
		LabFee:        decimal.NewFromInt(500),
		MiscFee:       decimal.NewFromInt(2000),
		VATMultiplier: decimal.RequireFromString("1.05"),
	}
	// 3 * 1500 + 2000 = 6500; * 1.05 = 6825.
	assertDecimalEqual(t, "6825.00", student.RequestAssessmentWith(fees))
}

func TestStudent_Assess_HasNoSideEffects(t *testing.T) {
	subject := mustSubject(t, "SUBA", 3, false)
	student := studentWith(t, subject)
	section := mustSection(t, "A", mthMorning, mustRoom(t, "X", 10), subject)
	require.NoError(t, student.Enlist(section))

	_ = student.Assess(DefaultFeeSchedule())
	_ = student.Assess(DefaultFeeSchedule())

	assert.Len(t, student.Sections(), 1)
	assert.Equal(t, shared.Units(3), student.TotalUnitsEnlisted())
	assert.Equal(t, 1, section.Enlisted())
}
