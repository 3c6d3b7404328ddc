package subject_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/subject"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*subject.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return subject.New(pool), pool
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	examDate := domain.DateOnly(time.Now().AddDate(0, 0, 30))
	in := &domain.Subject{
		ID:       uuid.New(),
		Name:     "Linear Algebra",
		ExamDate: examDate,
		Color:    domain.DefaultColor(0),
		Position: 500,
	}

	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create: expected timestamps to be set")
	}

	got, err := repo.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != in.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, in.Name)
	}
	if !got.ExamDate.Equal(examDate) {
		t.Errorf("ExamDate mismatch: got %v, want %v", got.ExamDate, examDate)
	}
	if len(got.Chapters) != 0 {
		t.Errorf("expected no chapters, got %d", len(got.Chapters))
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_List_IncludesChaptersInOrder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 10))
	first := testhelper.SeedChapter(t, pool, seeded.ID, 1, 2)
	second := testhelper.SeedChapter(t, pool, seeded.ID, 3, 4)

	subjects, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	var found *domain.Subject
	for i := range subjects {
		if subjects[i].ID == seeded.ID {
			found = &subjects[i]
			break
		}
	}
	if found == nil {
		t.Fatal("seeded subject missing from List")
	}
	if len(found.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(found.Chapters))
	}
	if found.Chapters[0].ID != first.ID || found.Chapters[1].ID != second.ID {
		t.Error("chapters not in position order")
	}
}

func TestRepo_NextPosition_Increments(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 5))

	next, err := repo.NextPosition(ctx)
	if err != nil {
		t.Fatalf("NextPosition: unexpected error: %v", err)
	}
	if next <= seeded.Position {
		t.Errorf("NextPosition = %d, want > %d", next, seeded.Position)
	}
}

func TestRepo_Delete_CascadesChapters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 20))
	chapter := testhelper.SeedChapter(t, pool, seeded.ID, 2, 3)

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM chapters WHERE id = $1)`, chapter.ID).Scan(&exists)
	if err != nil {
		t.Fatalf("chapter existence query: %v", err)
	}
	if exists {
		t.Error("expected chapter rows to cascade on subject delete")
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_AddChapter_AssignsPosition(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 15))

	first, err := repo.AddChapter(ctx, &domain.Chapter{
		ID:             uuid.New(),
		SubjectID:      seeded.ID,
		Name:           "derivatives",
		Difficulty:     2,
		EstimatedHours: 3,
	})
	if err != nil {
		t.Fatalf("AddChapter: unexpected error: %v", err)
	}
	second, err := repo.AddChapter(ctx, &domain.Chapter{
		ID:             uuid.New(),
		SubjectID:      seeded.ID,
		Name:           "integrals",
		Difficulty:     3,
		EstimatedHours: 5,
	})
	if err != nil {
		t.Fatalf("AddChapter: unexpected error: %v", err)
	}

	if second.Position != first.Position+1 {
		t.Errorf("positions %d, %d are not consecutive", first.Position, second.Position)
	}
}

func TestRepo_AddChapter_UnknownSubject(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.AddChapter(context.Background(), &domain.Chapter{
		ID:             uuid.New(),
		SubjectID:      uuid.New(),
		Name:           "orphan",
		Difficulty:     1,
		EstimatedHours: 1,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from FK violation, got %v", err)
	}
}

func TestRepo_SetChapterCompleted(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 15))
	chapter := testhelper.SeedChapter(t, pool, seeded.ID, 1, 2)

	updated, err := repo.SetChapterCompleted(ctx, seeded.ID, chapter.ID, true)
	if err != nil {
		t.Fatalf("SetChapterCompleted: unexpected error: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed = true")
	}

	// Scoped to the subject: a wrong subject id must not match.
	_, err = repo.SetChapterCompleted(ctx, uuid.New(), chapter.ID, false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong subject, got %v", err)
	}
}

func TestRepo_DeleteChapter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 15))
	chapter := testhelper.SeedChapter(t, pool, seeded.ID, 1, 2)

	if err := repo.DeleteChapter(ctx, seeded.ID, chapter.ID); err != nil {
		t.Fatalf("DeleteChapter: unexpected error: %v", err)
	}
	if err := repo.DeleteChapter(ctx, seeded.ID, chapter.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepo_UpdatePriorities(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	a := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 5))
	b := testhelper.SeedSubject(t, pool, time.Now().AddDate(0, 0, 25))

	err := repo.UpdatePriorities(ctx, map[uuid.UUID]float64{
		a.ID: 4.5,
		b.ID: 0.75,
	})
	if err != nil {
		t.Fatalf("UpdatePriorities: unexpected error: %v", err)
	}

	gotA, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if gotA.Priority != 4.5 {
		t.Errorf("priority = %v, want 4.5", gotA.Priority)
	}
}
