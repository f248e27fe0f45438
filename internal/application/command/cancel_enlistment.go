package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CANCEL ENLISTMENT COMMAND
// Removes a section from a student's load. Cancelling a section the student
// does not hold is a rule violation, not a no-op.
// ══════════════════════════════════════════════════════════════════════════════

// CancelEnlistmentCommand contains the data to cancel an enlistment.
type CancelEnlistmentCommand struct {
	// StudentNo identifies the student.
	StudentNo shared.StudentNo

	// SectionID identifies the section to cancel.
	SectionID shared.SectionID

	// CorrelationID for tracing; generated when empty.
	CorrelationID string
}

// Validate validates the command.
func (c CancelEnlistmentCommand) Validate() error {
	if !c.StudentNo.IsValid() {
		return errors.New("cancel_enlistment: student_no must be non-negative")
	}
	if !c.SectionID.IsValid() {
		return errors.New("cancel_enlistment: section_id is required and must be alphanumeric")
	}
	return nil
}

// CancelEnlistmentResult contains the result of a successful cancellation.
type CancelEnlistmentResult struct {
	// StudentNo is the student whose enlistment was cancelled.
	StudentNo shared.StudentNo

	// SectionID is the cancelled section.
	SectionID shared.SectionID

	// RemainingSections is the number of sections still enrolled.
	RemainingSections int
}

// CancelEnlistmentHandler handles CancelEnlistmentCommand.
type CancelEnlistmentHandler struct {
	students enlistment.StudentRegistry
	sections enlistment.SectionRegistry
	events   EventPublisher
	logger   *slog.Logger
}

// NewCancelEnlistmentHandler creates the handler.
func NewCancelEnlistmentHandler(
	students enlistment.StudentRegistry,
	sections enlistment.SectionRegistry,
	events EventPublisher,
	logger *slog.Logger,
) (*CancelEnlistmentHandler, error) {
	if students == nil {
		return nil, errors.New("cancel_enlistment: student registry is required")
	}
	if sections == nil {
		return nil, errors.New("cancel_enlistment: section registry is required")
	}
	if events == nil {
		return nil, errors.New("cancel_enlistment: event publisher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelEnlistmentHandler{
		students: students,
		sections: sections,
		events:   events,
		logger:   logger,
	}, nil
}

// Handle executes the command.
func (h *CancelEnlistmentHandler) Handle(ctx context.Context, cmd CancelEnlistmentCommand) (CancelEnlistmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelEnlistmentResult{}, err
	}
	if cmd.CorrelationID == "" {
		cmd.CorrelationID = uuid.NewString()
	}
	logger := h.logger.With(
		"command", "cancel_enlistment",
		"student_no", cmd.StudentNo,
		"section_id", cmd.SectionID,
		"correlation_id", cmd.CorrelationID,
	)

	student, err := h.students.Get(cmd.StudentNo)
	if err != nil {
		return CancelEnlistmentResult{}, err
	}
	section, err := h.sections.Get(cmd.SectionID)
	if err != nil {
		return CancelEnlistmentResult{}, err
	}

	if err := student.CancelEnlistment(section); err != nil {
		logger.Info("cancellation rejected", "reason", err)
		return CancelEnlistmentResult{}, err
	}

	event := enlistment.NewEnlistmentCanceledEvent(student, section)
	event.BaseEvent = event.BaseEvent.WithCorrelation(cmd.CorrelationID)
	if err := h.events.Publish(event); err != nil {
		logger.Error("failed to publish event", "error", err)
	}

	logger.Info("enlistment cancelled", "remaining_sections", len(student.Sections()))
	return CancelEnlistmentResult{
		StudentNo:         student.StudentNo(),
		SectionID:         section.ID(),
		RemainingSections: len(student.Sections()),
	}, nil
}
