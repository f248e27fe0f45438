package enlistment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// FeeSchedule holds the tuition rates an assessment is computed from. All
// arithmetic is decimal so that cent rounding is exact.
type FeeSchedule struct {
	// PerUnit is the tuition charged per academic unit.
	PerUnit decimal.Decimal

	// LabFee is the flat fee added for each laboratory subject.
	LabFee decimal.Decimal

	// MiscFee is the flat miscellaneous fee added once per assessment.
	MiscFee decimal.Decimal

	// VATMultiplier scales the subtotal into the final total (1.12 for 12% VAT).
	VATMultiplier decimal.Decimal
}

// DefaultFeeSchedule returns the standard rates: 2000 per unit, 1000 per
// laboratory subject, 3000 miscellaneous, 12% VAT.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		PerUnit:       decimal.NewFromInt(2000),
		LabFee:        decimal.NewFromInt(1000),
		MiscFee:       decimal.NewFromInt(3000),
		VATMultiplier: decimal.RequireFromString("1.12"),
	}
}

// Validate checks that no rate is negative and the VAT multiplier is positive.
func (f FeeSchedule) Validate() error {
	if f.PerUnit.IsNegative() || f.LabFee.IsNegative() || f.MiscFee.IsNegative() {
		return shared.NewDomainError("enlistment", "FeeSchedule.Validate", shared.ErrNegativeValue,
			"fees cannot be negative")
	}
	if !f.VATMultiplier.IsPositive() {
		return shared.NewDomainError("enlistment", "FeeSchedule.Validate", shared.ErrValueOutOfRange,
			"VAT multiplier must be positive")
	}
	return nil
}

// AssessmentLine is the charge for one enlisted section: units times the
// per-unit rate, plus the laboratory fee when the subject is a laboratory.
type AssessmentLine struct {
	SectionID  shared.SectionID
	SubjectID  shared.SubjectID
	Units      shared.Units
	Laboratory bool
	Amount     decimal.Decimal
}

// Assessment is the priced view of a student's current load. It is a value
// computed from the aggregate; producing one has no side effects on the
// student.
type Assessment struct {
	// Reference uniquely identifies this assessment printout.
	Reference string

	// StudentNo is the assessed student.
	StudentNo shared.StudentNo

	// AssessedAt is when the assessment was computed.
	AssessedAt time.Time

	// Lines holds one charge per enlisted section, sorted by section id.
	Lines []AssessmentLine

	// Subtotal is the sum of all lines plus the miscellaneous fee, before VAT.
	Subtotal decimal.Decimal

	// Total is the subtotal times the VAT multiplier, rounded half-up to two
	// decimal places.
	Total decimal.Decimal
}

// Assess prices the student's currently enrolled sections against the given
// fee schedule.
func (s *Student) Assess(fees FeeSchedule) Assessment {
	lines := make([]AssessmentLine, 0, len(s.sections))
	subtotal := fees.MiscFee
	for _, section := range s.Sections() {
		subject := section.Subject()
		amount := fees.PerUnit.Mul(decimal.NewFromInt(int64(subject.Units().Int())))
		if subject.IsLaboratory() {
			amount = amount.Add(fees.LabFee)
		}
		lines = append(lines, AssessmentLine{
			SectionID:  section.ID(),
			SubjectID:  subject.ID(),
			Units:      subject.Units(),
			Laboratory: subject.IsLaboratory(),
			Amount:     amount,
		})
		subtotal = subtotal.Add(amount)
	}
	return Assessment{
		Reference:  uuid.NewString(),
		StudentNo:  s.studentNo,
		AssessedAt: time.Now().UTC(),
		Lines:      lines,
		Subtotal:   subtotal,
		Total:      subtotal.Mul(fees.VATMultiplier).Round(2),
	}
}

// RequestAssessmentWith returns the tuition total for the student's current
// load under the given fee schedule.
func (s *Student) RequestAssessmentWith(fees FeeSchedule) decimal.Decimal {
	return s.Assess(fees).Total
}

// RequestAssessment returns the tuition total for the student's current load
// under the default fee schedule.
func (s *Student) RequestAssessment() decimal.Decimal {
	return s.RequestAssessmentWith(DefaultFeeSchedule())
}
