package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// AddSubject creates a subject with an internally assigned id, default color,
// and zero priority. Chapters start empty.
func (s *Service) AddSubject(ctx context.Context, input AddSubjectInput) (*domain.Subject, error) {
	if err := input.Validate(s.today()); err != nil {
		return nil, err
	}

	subject := &domain.Subject{
		ID:       uuid.New(),
		Name:     input.Name,
		ExamDate: domain.DateOnly(input.ExamDate),
	}

	var created *domain.Subject
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		pos, err := s.subjects.NextPosition(ctx)
		if err != nil {
			return fmt.Errorf("next position: %w", err)
		}
		subject.Position = pos
		subject.Color = domain.DefaultColor(pos)

		created, err = s.subjects.Create(ctx, subject)
		if err != nil {
			return fmt.Errorf("create subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subject added",
		"subject_id", created.ID,
		"exam_date", created.ExamDate.Format("2006-01-02"),
	)
	return created, nil
}

// DeleteSubject removes a subject, its chapters, and its generated sessions
// in one transaction, so no generated session can outlive its chapter.
// Manual sessions referencing the subject are left in place; read paths
// treat their subject reference as lookup-or-absent.
func (s *Service) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.sessions.DeleteGeneratedBySubject(ctx, id); err != nil {
			return fmt.Errorf("purge generated sessions: %w", err)
		}
		if err := s.subjects.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subject deleted", "subject_id", id)
	return nil
}

// Subjects returns a snapshot of all subjects with their chapters, in
// creation order.
func (s *Service) Subjects(ctx context.Context) ([]domain.Subject, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
