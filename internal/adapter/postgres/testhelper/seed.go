package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSubject creates a subject with no chapters. Position is appended after
// the current maximum. Returns the filled domain.Subject.
func SeedSubject(t *testing.T, pool *pgxpool.Pool, examDate time.Time) domain.Subject {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	var position int
	err := pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM subjects`,
	).Scan(&position)
	if err != nil {
		t.Fatalf("testhelper: SeedSubject next position: %v", err)
	}

	subject := domain.Subject{
		ID:        uuid.New(),
		Name:      "Subject " + suffix,
		ExamDate:  domain.DateOnly(examDate),
		Color:     domain.DefaultColor(position),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO subjects (id, name, exam_date, color, priority, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		subject.ID, subject.Name, subject.ExamDate, subject.Color, subject.Priority, subject.Position, subject.CreatedAt, subject.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubject insert: %v", err)
	}

	return subject
}

// SeedChapter creates a chapter for the given subject. Position is appended
// after the subject's current maximum.
func SeedChapter(t *testing.T, pool *pgxpool.Pool, subjectID uuid.UUID, difficulty int, estimatedHours float64) domain.Chapter {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	var position int
	err := pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM chapters WHERE subject_id = $1`,
		subjectID,
	).Scan(&position)
	if err != nil {
		t.Fatalf("testhelper: SeedChapter next position: %v", err)
	}

	chapter := domain.Chapter{
		ID:             uuid.New(),
		SubjectID:      subjectID,
		Name:           "Chapter " + suffix,
		Difficulty:     difficulty,
		EstimatedHours: estimatedHours,
		Position:       position,
		CreatedAt:      now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO chapters (id, subject_id, name, difficulty, estimated_hours, completed, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		chapter.ID, chapter.SubjectID, chapter.Name, chapter.Difficulty, chapter.EstimatedHours, chapter.Completed, chapter.Position, chapter.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChapter insert: %v", err)
	}

	return chapter
}

// SetAvailability overwrites the hours for every weekday in the ledger.
func SetAvailability(t *testing.T, pool *pgxpool.Pool, week domain.WeekAvailability) {
	t.Helper()
	ctx := context.Background()

	for weekday, hours := range week {
		_, err := pool.Exec(ctx,
			`UPDATE availability SET hours = $1 WHERE weekday = $2`,
			hours, weekday,
		)
		if err != nil {
			t.Fatalf("testhelper: SetAvailability weekday %d: %v", weekday, err)
		}
	}
}

// SeedSession creates a study session with the given origin. ChapterID may be
// uuid.Nil for a freeform session.
func SeedSession(t *testing.T, pool *pgxpool.Pool, subjectID, chapterID uuid.UUID, date time.Time, hours float64, origin domain.SessionOrigin) domain.StudySession {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.StudySession{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Date:          domain.DateOnly(date),
		DurationHours: hours,
		Mood:          domain.MoodNeutral,
		Origin:        origin,
		CreatedAt:     now,
	}
	if chapterID != uuid.Nil {
		session.ChapterID = &chapterID
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO study_sessions (id, subject_id, chapter_id, session_date, duration_hours, mood, notes, completed, origin, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		session.ID, session.SubjectID, session.ChapterID, session.Date, session.DurationHours,
		string(session.Mood), session.Notes, session.Completed, string(session.Origin), session.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert: %v", err)
	}

	return session
}
