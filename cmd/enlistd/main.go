// Package main is the enlistment session driver.
//
// enlistd loads a term's catalog from CSV files (subjects, rooms, degree
// programs, sections, students), then replays an enlistment-requests file
// through the application layer: enlist and cancel requests run the rule
// engine, assess requests print a tuition assessment. Rule rejections are
// logged and processing continues - they are user-correctable conditions,
// not system faults. Catalog or configuration errors are fatal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/registrar-hub/enlistment/config"
	"github.com/registrar-hub/enlistment/internal/application/command"
	"github.com/registrar-hub/enlistment/internal/application/query"
	"github.com/registrar-hub/enlistment/internal/domain/enlistment"
	"github.com/registrar-hub/enlistment/internal/domain/shared"
	"github.com/registrar-hub/enlistment/internal/infrastructure/csvio"
	"github.com/registrar-hub/enlistment/internal/infrastructure/inmem"
	"github.com/registrar-hub/enlistment/internal/infrastructure/messaging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("enlistd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.BuildLogger()
	fees, err := cfg.Fees.FeeSchedule()
	if err != nil {
		return err
	}

	// Catalog
	loader := csvio.NewLoader(logger)
	loaded, err := loader.LoadCatalog(csvio.CatalogFiles{
		Subjects: cfg.Catalog.SubjectsFile,
		Rooms:    cfg.Catalog.RoomsFile,
		Programs: cfg.Catalog.ProgramsFile,
		Sections: cfg.Catalog.SectionsFile,
		Students: cfg.Catalog.StudentsFile,
	})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		"subjects", len(loaded.Subjects),
		"rooms", len(loaded.Rooms),
		"programs", len(loaded.Programs),
		"sections", len(loaded.Sections),
		"students", len(loaded.Students),
	)

	// Registries
	students := inmem.NewStudentRegistry()
	for _, student := range loaded.Students {
		if err := students.Add(student); err != nil {
			return err
		}
	}
	sections := inmem.NewSectionRegistry()
	for _, section := range loaded.Sections {
		if err := sections.Add(section); err != nil {
			return err
		}
	}

	// Event bus with an audit subscriber
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = logger
	bus := messaging.NewInMemoryEventBus(busConfig)
	defer bus.Close()
	if err := bus.SubscribeAll(func(event shared.Event) error {
		logger.Debug("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"aggregate_id", event.AggregateID(),
		)
		return nil
	}); err != nil {
		return err
	}

	// Announce the term's sections to the audit trail.
	for _, section := range loaded.Sections {
		if err := bus.Publish(enlistment.NewSectionRegisteredEvent(section)); err != nil {
			return err
		}
	}

	// Application layer
	enlist, err := command.NewEnlistSectionHandler(students, sections, bus, logger)
	if err != nil {
		return err
	}
	cancel, err := command.NewCancelEnlistmentHandler(students, sections, bus, logger)
	if err != nil {
		return err
	}
	assess, err := query.NewRequestAssessmentHandler(students, fees, bus, logger)
	if err != nil {
		return err
	}

	// Requests
	requestsFile, err := os.Open(cfg.Catalog.RequestsFile)
	if err != nil {
		return fmt.Errorf("open requests: %w", err)
	}
	requests, err := loader.LoadRequests(requestsFile)
	requestsFile.Close()
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, request := range requests {
		switch request.Action {
		case csvio.ActionEnlist:
			_, err = enlist.Handle(ctx, command.EnlistSectionCommand{
				StudentNo: request.StudentNo,
				SectionID: request.SectionID,
			})
		case csvio.ActionCancel:
			_, err = cancel.Handle(ctx, command.CancelEnlistmentCommand{
				StudentNo: request.StudentNo,
				SectionID: request.SectionID,
			})
		case csvio.ActionAssess:
			var assessment enlistment.Assessment
			assessment, err = assess.Handle(ctx, query.RequestAssessmentQuery{
				StudentNo: request.StudentNo,
			})
			if err == nil {
				printAssessment(assessment)
			}
		}
		if err != nil {
			if shared.IsRuleViolation(err) || shared.IsNotFound(err) {
				logger.Warn("request rejected",
					"student_no", request.StudentNo,
					"action", request.Action,
					"section_id", request.SectionID,
					"reason", err,
				)
				err = nil
				continue
			}
			return err
		}
	}
	return nil
}

// printAssessment writes one assessment to stdout.
func printAssessment(a enlistment.Assessment) {
	fmt.Printf("assessment %s for student %s\n", a.Reference, a.StudentNo)
	for _, line := range a.Lines {
		lab := ""
		if line.Laboratory {
			lab = " (lab)"
		}
		fmt.Printf("  %-8s %-10s %2d units%s  %12s\n",
			line.SectionID, line.SubjectID, line.Units.Int(), lab, line.Amount.StringFixed(2))
	}
	fmt.Printf("  subtotal %12s\n", a.Subtotal.StringFixed(2))
	fmt.Printf("  total    %12s\n", a.Total.StringFixed(2))
}
