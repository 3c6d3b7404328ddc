package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// AddSession logs a manual study session. Manual sessions are never touched
// by plan generation. The referenced subject must exist at creation time; if
// a chapter is referenced it must belong to that subject.
func (s *Service) AddSession(ctx context.Context, input AddSessionInput) (*domain.StudySession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, input.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", input.SubjectID, err)
	}
	if input.ChapterID != nil {
		if _, ok := subject.ChapterByID(*input.ChapterID); !ok {
			return nil, fmt.Errorf("chapter %s: %w", *input.ChapterID, domain.ErrNotFound)
		}
	}

	mood := input.Mood
	if mood == "" {
		mood = domain.MoodNeutral
	}

	session := &domain.StudySession{
		ID:            uuid.New(),
		SubjectID:     input.SubjectID,
		ChapterID:     input.ChapterID,
		Date:          domain.DateOnly(input.Date),
		DurationHours: input.DurationHours,
		Mood:          mood,
		Notes:         input.Notes,
		Origin:        domain.SessionOriginManual,
	}

	created, err := s.sessions.Add(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}

	s.log.InfoContext(ctx, "session added",
		"session_id", created.ID,
		"subject_id", created.SubjectID,
		"duration_hours", created.DurationHours,
	)
	return created, nil
}

// UpdateSession applies a partial update to an existing session (completion
// toggling, notes, rescheduling). Any edit takes ownership of the session: a
// generated session is promoted to MANUAL, so regeneration never discards
// what the user changed. An unknown id is reported as ErrNotFound.
func (s *Service) UpdateSession(ctx context.Context, input UpdateSessionInput) (*domain.StudySession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", input.ID, err)
	}

	if input.Date != nil {
		session.Date = domain.DateOnly(*input.Date)
	}
	if input.DurationHours != nil {
		session.DurationHours = *input.DurationHours
	}
	if input.Mood != nil {
		session.Mood = *input.Mood
	}
	if input.Notes != nil {
		session.Notes = input.Notes
	}
	if input.Completed != nil {
		session.Completed = *input.Completed
	}
	session.Origin = domain.SessionOriginManual

	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	s.log.InfoContext(ctx, "session updated", "session_id", updated.ID)
	return updated, nil
}

// DeleteSession removes a session by id, regardless of origin. An unknown id
// is reported as ErrNotFound, not a crash.
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.sessions.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove session %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "session deleted", "session_id", id)
	return nil
}

// Sessions returns a snapshot of the merged generated + manual session set.
func (s *Service) Sessions(ctx context.Context) ([]domain.StudySession, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
