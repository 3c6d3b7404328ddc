// Package session implements the study session repository using PostgreSQL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var sessionColumns = []string{
	"id", "subject_id", "chapter_id", "session_date", "duration_hours",
	"mood", "notes", "completed", "origin", "created_at",
}

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns every session ordered by date, generated and manual alike.
func (r *Repo) List(ctx context.Context) ([]domain.StudySession, error) {
	return r.list(ctx, psql.Select(sessionColumns...).
		From("study_sessions").
		OrderBy("session_date ASC", "subject_id ASC"))
}

// ListByOrigin returns sessions with the given provenance, ordered by date.
func (r *Repo) ListByOrigin(ctx context.Context, origin domain.SessionOrigin) ([]domain.StudySession, error) {
	return r.list(ctx, psql.Select(sessionColumns...).
		From("study_sessions").
		Where(squirrel.Eq{"origin": string(origin)}).
		OrderBy("session_date ASC", "subject_id ASC"))
}

func (r *Repo) list(ctx context.Context, query squirrel.SelectBuilder) ([]domain.StudySession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "session", uuid.Nil)
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, mapError(err, "session", uuid.Nil)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// GetByID returns a session by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(sessionColumns...).
		From("study_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	session, err := scanSession(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "session", id)
	}
	return session, nil
}

// Add inserts one session row.
func (r *Repo) Add(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("study_sessions").
		Columns("id", "subject_id", "chapter_id", "session_date", "duration_hours", "mood", "notes", "completed", "origin").
		Values(session.ID, session.SubjectID, session.ChapterID, session.Date, session.DurationHours,
			string(session.Mood), session.Notes, session.Completed, string(session.Origin)).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created := *session
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.CreatedAt); err != nil {
		return nil, mapError(err, "session", session.ID)
	}
	return &created, nil
}

// Update overwrites the mutable fields of a session, origin included: the
// service layer promotes edited generated sessions to MANUAL through here.
func (r *Repo) Update(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("study_sessions").
		Set("session_date", session.Date).
		Set("duration_hours", session.DurationHours).
		Set("mood", string(session.Mood)).
		Set("notes", session.Notes).
		Set("completed", session.Completed).
		Set("origin", string(session.Origin)).
		Where(squirrel.Eq{"id": session.ID}).
		Suffix("RETURNING " + joinColumns(sessionColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanSession(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "session", session.ID)
	}
	return updated, nil
}

// Remove deletes a session by id regardless of origin.
func (r *Repo) Remove(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("study_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "session", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ReplaceGenerated swaps the whole generated set for a new one. Manual
// sessions are untouched: when a generated id collides with an existing row
// (a session the user edited and now owns), the insert is skipped and the
// stored row wins. Callers run this inside a transaction so readers never
// observe the half-replaced state.
func (r *Repo) ReplaceGenerated(ctx context.Context, sessions []domain.StudySession) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`DELETE FROM study_sessions WHERE origin = $1`,
		string(domain.SessionOriginGenerated),
	); err != nil {
		return mapError(err, "session", uuid.Nil)
	}

	if len(sessions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range sessions {
		s := &sessions[i]
		batch.Queue(
			`INSERT INTO study_sessions (id, subject_id, chapter_id, session_date, duration_hours, mood, notes, completed, origin)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			s.ID, s.SubjectID, s.ChapterID, s.Date, s.DurationHours,
			string(s.Mood), s.Notes, s.Completed, string(s.Origin),
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range sessions {
		if _, err := results.Exec(); err != nil {
			return mapError(err, "session", uuid.Nil)
		}
	}
	return nil
}

// DeleteGeneratedBySubject purges generated sessions for one subject.
func (r *Repo) DeleteGeneratedBySubject(ctx context.Context, subjectID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`DELETE FROM study_sessions WHERE subject_id = $1 AND origin = $2`,
		subjectID, string(domain.SessionOriginGenerated),
	)
	if err != nil {
		return mapError(err, "session", subjectID)
	}
	return nil
}

// DeleteGeneratedByChapter purges generated sessions for one chapter.
func (r *Repo) DeleteGeneratedByChapter(ctx context.Context, chapterID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`DELETE FROM study_sessions WHERE chapter_id = $1 AND origin = $2`,
		chapterID, string(domain.SessionOriginGenerated),
	)
	if err != nil {
		return mapError(err, "session", chapterID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanSession(row pgx.Row) (*domain.StudySession, error) {
	var (
		s    domain.StudySession
		date time.Time
		mood string
		orig string
	)
	if err := row.Scan(&s.ID, &s.SubjectID, &s.ChapterID, &date, &s.DurationHours,
		&mood, &s.Notes, &s.Completed, &orig, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Date = domain.DateOnly(date)
	s.Mood = domain.Mood(mood)
	s.Origin = domain.SessionOrigin(orig)
	return &s, nil
}

func joinColumns(columns []string) string {
	out := columns[0]
	for _, col := range columns[1:] {
		out += ", " + col
	}
	return out
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
