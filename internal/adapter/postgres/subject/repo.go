// Package subject implements the subject repository using PostgreSQL.
// Queries are built with squirrel; chapters are loaded alongside their
// subject so callers always see a fully hydrated aggregate.
package subject

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

var subjectColumns = []string{"id", "name", "exam_date", "color", "priority", "position", "created_at", "updated_at"}

var chapterColumns = []string{"id", "subject_id", "name", "difficulty", "estimated_hours", "completed", "position", "created_at"}

// Repo provides subject and chapter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subject repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Subjects
// ---------------------------------------------------------------------------

// Create inserts a subject row. Chapters on the input are ignored; subjects
// start empty and grow through AddChapter.
func (r *Repo) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("subjects").
		Columns("id", "name", "exam_date", "color", "priority", "position").
		Values(subject.ID, subject.Name, subject.ExamDate, subject.Color, subject.Priority, subject.Position).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created := *subject
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, mapError(err, "subject", subject.ID)
	}
	created.Chapters = nil

	return &created, nil
}

// NextPosition returns the append slot for a new subject.
func (r *Repo) NextPosition(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var position int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM subjects`).Scan(&position)
	if err != nil {
		return 0, mapError(err, "subject", uuid.Nil)
	}
	return position, nil
}

// GetByID returns a subject with its chapters in stored order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	subject, err := scanSubject(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "subject", id)
	}

	chapters, err := r.chaptersFor(ctx, q, []uuid.UUID{id})
	if err != nil {
		return nil, mapError(err, "subject", id)
	}
	subject.Chapters = chapters[id]

	return subject, nil
}

// List returns all subjects in position order, chapters included.
func (r *Repo) List(ctx context.Context) ([]domain.Subject, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(subjectColumns...).
		From("subjects").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "subject", uuid.Nil)
	}
	defer rows.Close()

	var subjects []domain.Subject
	var ids []uuid.UUID
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, mapError(err, "subject", uuid.Nil)
		}
		subjects = append(subjects, *subject)
		ids = append(ids, subject.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "subject", uuid.Nil)
	}

	if len(ids) == 0 {
		return subjects, nil
	}

	chapters, err := r.chaptersFor(ctx, q, ids)
	if err != nil {
		return nil, mapError(err, "subject", uuid.Nil)
	}
	for i := range subjects {
		subjects[i].Chapters = chapters[subjects[i].ID]
	}

	return subjects, nil
}

// Delete removes a subject; chapters go with it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "subject", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdatePriorities writes recomputed priority scores in one batch.
func (r *Repo) UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]float64) error {
	if len(priorities) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for id, priority := range priorities {
		batch.Queue(
			`UPDATE subjects SET priority = $1, updated_at = now() WHERE id = $2`,
			priority, id,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range priorities {
		if _, err := results.Exec(); err != nil {
			return mapError(err, "subject", uuid.Nil)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Chapters
// ---------------------------------------------------------------------------

// AddChapter appends a chapter at the subject's next position.
func (r *Repo) AddChapter(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *chapter
	err := q.QueryRow(ctx,
		`INSERT INTO chapters (id, subject_id, name, difficulty, estimated_hours, completed, position)
		 VALUES ($1, $2, $3, $4, $5, $6,
		         (SELECT COALESCE(MAX(position) + 1, 0) FROM chapters WHERE subject_id = $2))
		 RETURNING position, created_at`,
		chapter.ID, chapter.SubjectID, chapter.Name, chapter.Difficulty, chapter.EstimatedHours, chapter.Completed,
	).Scan(&created.Position, &created.CreatedAt)
	if err != nil {
		return nil, mapError(err, "chapter", chapter.ID)
	}

	return &created, nil
}

// DeleteChapter removes a chapter scoped to its subject.
func (r *Repo) DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("chapters").
		Where(squirrel.Eq{"id": chapterID, "subject_id": subjectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "chapter", chapterID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", chapterID, domain.ErrNotFound)
	}
	return nil
}

// SetChapterCompleted writes the completion flag and returns the updated row.
func (r *Repo) SetChapterCompleted(ctx context.Context, subjectID, chapterID uuid.UUID, completed bool) (*domain.Chapter, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("chapters").
		Set("completed", completed).
		Where(squirrel.Eq{"id": chapterID, "subject_id": subjectID}).
		Suffix("RETURNING " + joinColumns(chapterColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	chapter, err := scanChapter(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "chapter", chapterID)
	}
	return chapter, nil
}

// chaptersFor loads chapters for the given subjects, grouped by subject id.
func (r *Repo) chaptersFor(ctx context.Context, q postgres.Querier, subjectIDs []uuid.UUID) (map[uuid.UUID][]domain.Chapter, error) {
	sql, args, err := psql.Select(chapterColumns...).
		From("chapters").
		Where(squirrel.Eq{"subject_id": subjectIDs}).
		OrderBy("subject_id", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]domain.Chapter, len(subjectIDs))
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		grouped[chapter.SubjectID] = append(grouped[chapter.SubjectID], *chapter)
	}
	return grouped, rows.Err()
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanSubject(row pgx.Row) (*domain.Subject, error) {
	var (
		s        domain.Subject
		examDate time.Time
	)
	if err := row.Scan(&s.ID, &s.Name, &examDate, &s.Color, &s.Priority, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.ExamDate = domain.DateOnly(examDate)
	return &s, nil
}

func scanChapter(row pgx.Row) (*domain.Chapter, error) {
	var c domain.Chapter
	if err := row.Scan(&c.ID, &c.SubjectID, &c.Name, &c.Difficulty, &c.EstimatedHours, &c.Completed, &c.Position, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
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
