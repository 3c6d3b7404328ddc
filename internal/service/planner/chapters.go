package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// AddChapter appends a chapter to a subject. The chapter's position is the
// next slot in the subject's stored order.
func (s *Service) AddChapter(ctx context.Context, input AddChapterInput) (*domain.Chapter, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Lookup-or-fail: the subject may have been deleted independently.
	if _, err := s.subjects.GetByID(ctx, input.SubjectID); err != nil {
		return nil, fmt.Errorf("subject %s: %w", input.SubjectID, err)
	}

	chapter := &domain.Chapter{
		ID:             uuid.New(),
		SubjectID:      input.SubjectID,
		Name:           input.Name,
		Difficulty:     input.Difficulty,
		EstimatedHours: input.EstimatedHours,
	}

	created, err := s.subjects.AddChapter(ctx, chapter)
	if err != nil {
		return nil, fmt.Errorf("add chapter: %w", err)
	}

	s.log.InfoContext(ctx, "chapter added",
		"subject_id", input.SubjectID,
		"chapter_id", created.ID,
		"estimated_hours", created.EstimatedHours,
	)
	return created, nil
}

// DeleteChapter removes a chapter and purges its generated sessions in the
// same transaction, keeping the no-stale-references invariant.
func (s *Service) DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error {
	if subjectID == uuid.Nil || chapterID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.sessions.DeleteGeneratedByChapter(ctx, chapterID); err != nil {
			return fmt.Errorf("purge generated sessions: %w", err)
		}
		if err := s.subjects.DeleteChapter(ctx, subjectID, chapterID); err != nil {
			return fmt.Errorf("delete chapter: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "chapter deleted", "subject_id", subjectID, "chapter_id", chapterID)
	return nil
}

// ToggleChapterComplete flips a chapter's completion flag and returns the
// updated chapter. Completing a chapter removes its remaining workload from
// the next generation; the current generated sessions are left as they are
// until the user regenerates.
func (s *Service) ToggleChapterComplete(ctx context.Context, subjectID, chapterID uuid.UUID) (*domain.Chapter, error) {
	if subjectID == uuid.Nil || chapterID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var updated *domain.Chapter
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		subject, err := s.subjects.GetByID(ctx, subjectID)
		if err != nil {
			return fmt.Errorf("subject %s: %w", subjectID, err)
		}
		chapter, ok := subject.ChapterByID(chapterID)
		if !ok {
			return fmt.Errorf("chapter %s: %w", chapterID, domain.ErrNotFound)
		}

		updated, err = s.subjects.SetChapterCompleted(ctx, subjectID, chapterID, !chapter.Completed)
		if err != nil {
			return fmt.Errorf("toggle chapter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "chapter toggled",
		"subject_id", subjectID,
		"chapter_id", chapterID,
		"completed", updated.Completed,
	)
	return updated, nil
}
