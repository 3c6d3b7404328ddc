package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner/schedule"
)

// GeneratePlan recomputes subject priorities and replaces the generated
// session set with a fresh allocation, all in one transaction. Manual
// sessions are preserved untouched. Regeneration is idempotent: with
// unchanged subjects, availability, and date, the produced set is identical.
func (s *Service) GeneratePlan(ctx context.Context) (*domain.PlanReport, error) {
	today := s.today()

	var report domain.PlanReport
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		subjects, err := s.subjects.List(ctx)
		if err != nil {
			return fmt.Errorf("list subjects: %w", err)
		}
		avail, err := s.availability.Get(ctx)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}

		var manual []domain.StudySession
		if s.params.ReserveManualHours {
			manual, err = s.sessions.ListByOrigin(ctx, domain.SessionOriginManual)
			if err != nil {
				return fmt.Errorf("list manual sessions: %w", err)
			}
		}

		// Priorities are derived state; persist the recomputed scores so
		// reads reflect the ordering the plan was built from.
		priorities := make(map[uuid.UUID]float64, len(subjects))
		for i := range subjects {
			priorities[subjects[i].ID] = schedule.Score(s.params, &subjects[i], today)
		}
		if err := s.subjects.UpdatePriorities(ctx, priorities); err != nil {
			return fmt.Errorf("update priorities: %w", err)
		}

		res := schedule.Generate(s.params, schedule.Input{
			Subjects:       subjects,
			Availability:   avail,
			Today:          today,
			ManualSessions: manual,
		})

		if err := s.sessions.ReplaceGenerated(ctx, res.Sessions); err != nil {
			return fmt.Errorf("replace generated sessions: %w", err)
		}

		report = res.Report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "plan generated",
		"sessions", report.GeneratedSessions,
		"scheduled_hours", report.ScheduledHours,
		"shortfalls", len(report.Shortfalls),
		"unschedulable", len(report.Unschedulable),
	)
	return &report, nil
}
