// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// EventPublisher is the outbound port for publishing domain events. The
// in-memory bus in infrastructure/messaging satisfies it.
type EventPublisher interface {
	Publish(event shared.Event) error
}

// ══════════════════════════════════════════════════════════════════════════════
// ENLIST SECTION COMMAND
// Enlists a student into a section, running the full guard chain of the
// Student aggregate. A rejection is returned to the caller as-is; it is
// user-correctable and never retried.
// ══════════════════════════════════════════════════════════════════════════════

// EnlistSectionCommand contains the data to enlist a student into a section.
type EnlistSectionCommand struct {
	// StudentNo identifies the student.
	StudentNo shared.StudentNo

	// SectionID identifies the section to enlist into.
	SectionID shared.SectionID

	// CorrelationID for tracing; generated when empty.
	CorrelationID string
}

// Validate validates the command.
func (c EnlistSectionCommand) Validate() error {
	if !c.StudentNo.IsValid() {
		return errors.New("enlist_section: student_no must be non-negative")
	}
	if !c.SectionID.IsValid() {
		return errors.New("enlist_section: section_id is required and must be alphanumeric")
	}
	return nil
}

// EnlistSectionResult contains the result of a successful enlistment.
type EnlistSectionResult struct {
	// StudentNo is the enlisted student.
	StudentNo shared.StudentNo

	// SectionID is the section joined.
	SectionID shared.SectionID

	// SubjectID is the subject the section offers.
	SubjectID shared.SubjectID

	// TotalUnits is the student's unit load after the enlistment.
	TotalUnits shared.Units

	// SectionEnlisted is the section's enlisted count after the enlistment.
	SectionEnlisted int
}

// EnlistSectionHandler handles EnlistSectionCommand.
type EnlistSectionHandler struct {
	students enlistment.StudentRegistry
	sections enlistment.SectionRegistry
	events   EventPublisher
	logger   *slog.Logger
}

// NewEnlistSectionHandler creates the handler.
func NewEnlistSectionHandler(
	students enlistment.StudentRegistry,
	sections enlistment.SectionRegistry,
	events EventPublisher,
	logger *slog.Logger,
) (*EnlistSectionHandler, error) {
	if students == nil {
		return nil, errors.New("enlist_section: student registry is required")
	}
	if sections == nil {
		return nil, errors.New("enlist_section: section registry is required")
	}
	if events == nil {
		return nil, errors.New("enlist_section: event publisher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EnlistSectionHandler{
		students: students,
		sections: sections,
		events:   events,
		logger:   logger,
	}, nil
}

// Handle executes the command. The context carries no deadline semantics
// here - every rule check is synchronous and in-memory - but is accepted for
// uniformity with the rest of the application layer.
func (h *EnlistSectionHandler) Handle(ctx context.Context, cmd EnlistSectionCommand) (EnlistSectionResult, error) {
	if err := cmd.Validate(); err != nil {
		return EnlistSectionResult{}, err
	}
	if cmd.CorrelationID == "" {
		cmd.CorrelationID = uuid.NewString()
	}
	logger := h.logger.With(
		"command", "enlist_section",
		"student_no", cmd.StudentNo,
		"section_id", cmd.SectionID,
		"correlation_id", cmd.CorrelationID,
	)

	student, err := h.students.Get(cmd.StudentNo)
	if err != nil {
		return EnlistSectionResult{}, err
	}
	section, err := h.sections.Get(cmd.SectionID)
	if err != nil {
		return EnlistSectionResult{}, err
	}

	if err := student.Enlist(section); err != nil {
		logger.Info("enlistment rejected", "reason", err)
		return EnlistSectionResult{}, err
	}

	event := enlistment.NewSectionEnlistedEvent(student, section)
	event.BaseEvent = event.BaseEvent.WithCorrelation(cmd.CorrelationID)
	if err := h.events.Publish(event); err != nil {
		// The aggregate has committed; a failed publish must not undo it.
		logger.Error("failed to publish event", "error", err)
	}

	logger.Info("student enlisted",
		"subject_id", section.Subject().ID(),
		"total_units", student.TotalUnitsEnlisted(),
	)
	return EnlistSectionResult{
		StudentNo:       student.StudentNo(),
		SectionID:       section.ID(),
		SubjectID:       section.Subject().ID(),
		TotalUnits:      student.TotalUnitsEnlisted(),
		SectionEnlisted: section.Enlisted(),
	}, nil
}
