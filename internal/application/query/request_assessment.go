// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// EventPublisher is the outbound port for publishing domain events.
type EventPublisher interface {
	Publish(event shared.Event) error
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST ASSESSMENT QUERY
// Prices a student's current load. Computing an assessment never mutates the
// aggregate; the published event is an audit record of the printout.
// ══════════════════════════════════════════════════════════════════════════════

// RequestAssessmentQuery identifies the student to assess.
type RequestAssessmentQuery struct {
	// StudentNo identifies the student.
	StudentNo shared.StudentNo

	// CorrelationID for tracing; generated when empty.
	CorrelationID string
}

// Validate validates the query.
func (q RequestAssessmentQuery) Validate() error {
	if !q.StudentNo.IsValid() {
		return errors.New("request_assessment: student_no must be non-negative")
	}
	return nil
}

// RequestAssessmentHandler handles RequestAssessmentQuery.
type RequestAssessmentHandler struct {
	students enlistment.StudentRegistry
	fees     enlistment.FeeSchedule
	events   EventPublisher
	logger   *slog.Logger
}

// NewRequestAssessmentHandler creates the handler with the given fee
// schedule.
func NewRequestAssessmentHandler(
	students enlistment.StudentRegistry,
	fees enlistment.FeeSchedule,
	events EventPublisher,
	logger *slog.Logger,
) (*RequestAssessmentHandler, error) {
	if students == nil {
		return nil, errors.New("request_assessment: student registry is required")
	}
	if err := fees.Validate(); err != nil {
		return nil, err
	}
	if events == nil {
		return nil, errors.New("request_assessment: event publisher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestAssessmentHandler{
		students: students,
		fees:     fees,
		events:   events,
		logger:   logger,
	}, nil
}

// Handle executes the query and returns the priced assessment.
func (h *RequestAssessmentHandler) Handle(ctx context.Context, q RequestAssessmentQuery) (enlistment.Assessment, error) {
	if err := q.Validate(); err != nil {
		return enlistment.Assessment{}, err
	}
	if q.CorrelationID == "" {
		q.CorrelationID = uuid.NewString()
	}

	student, err := h.students.Get(q.StudentNo)
	if err != nil {
		return enlistment.Assessment{}, err
	}

	assessment := student.Assess(h.fees)

	event := enlistment.NewStudentAssessedEvent(student, assessment)
	event.BaseEvent = event.BaseEvent.WithCorrelation(q.CorrelationID)
	if err := h.events.Publish(event); err != nil {
		h.logger.Error("failed to publish event",
			"query", "request_assessment",
			"student_no", q.StudentNo,
			"error", err,
		)
	}

	h.logger.Info("assessment computed",
		"query", "request_assessment",
		"student_no", q.StudentNo,
		"reference", assessment.Reference,
		"sections", len(assessment.Lines),
		"total", assessment.Total,
		"correlation_id", q.CorrelationID,
	)
	return assessment, nil
}
