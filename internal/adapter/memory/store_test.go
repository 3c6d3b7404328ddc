package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

func seedSubject(t *testing.T, store *Store, position int) domain.Subject {
	t.Helper()

	subject := &domain.Subject{
		ID:       uuid.New(),
		Name:     "Subject",
		ExamDate: domain.DateOnly(time.Now().AddDate(0, 0, 14)),
		Color:    domain.DefaultColor(position),
		Position: position,
	}
	created, err := store.Subjects().Create(context.Background(), subject)
	if err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	return *created
}

func TestSubjectRepo_CreateGetDelete(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Subjects()

	subject := seedSubject(t, store, 0)

	got, err := repo.GetByID(ctx, subject.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != subject.Name {
		t.Errorf("Name = %q, want %q", got.Name, subject.Name)
	}

	if err := repo.Delete(ctx, subject.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, subject.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSubjectRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()
	store := NewStore()
	subject := seedSubject(t, store, 0)

	_, err := store.Subjects().Create(context.Background(), &subject)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSubjectRepo_List_PositionOrder(t *testing.T) {
	t.Parallel()
	store := NewStore()

	second := seedSubject(t, store, 1)
	first := seedSubject(t, store, 0)

	subjects, err := store.Subjects().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("len = %d, want 2", len(subjects))
	}
	if subjects[0].ID != first.ID || subjects[1].ID != second.ID {
		t.Error("subjects not in position order")
	}
}

func TestSubjectRepo_NextPosition(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()

	next, err := store.Subjects().NextPosition(ctx)
	if err != nil {
		t.Fatalf("NextPosition: %v", err)
	}
	if next != 0 {
		t.Errorf("empty store NextPosition = %d, want 0", next)
	}

	seedSubject(t, store, 4)
	next, err = store.Subjects().NextPosition(ctx)
	if err != nil {
		t.Fatalf("NextPosition: %v", err)
	}
	if next != 5 {
		t.Errorf("NextPosition = %d, want 5", next)
	}
}

func TestSubjectRepo_Chapters(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Subjects()

	subject := seedSubject(t, store, 0)

	first, err := repo.AddChapter(ctx, &domain.Chapter{
		ID: uuid.New(), SubjectID: subject.ID, Name: "a", Difficulty: 1, EstimatedHours: 2,
	})
	if err != nil {
		t.Fatalf("AddChapter: %v", err)
	}
	second, err := repo.AddChapter(ctx, &domain.Chapter{
		ID: uuid.New(), SubjectID: subject.ID, Name: "b", Difficulty: 2, EstimatedHours: 3,
	})
	if err != nil {
		t.Fatalf("AddChapter: %v", err)
	}
	if second.Position != first.Position+1 {
		t.Errorf("positions %d, %d not consecutive", first.Position, second.Position)
	}

	toggled, err := repo.SetChapterCompleted(ctx, subject.ID, first.ID, true)
	if err != nil {
		t.Fatalf("SetChapterCompleted: %v", err)
	}
	if !toggled.Completed {
		t.Error("chapter not marked completed")
	}

	if err := repo.DeleteChapter(ctx, subject.ID, first.ID); err != nil {
		t.Fatalf("DeleteChapter: %v", err)
	}
	got, err := repo.GetByID(ctx, subject.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Chapters) != 1 || got.Chapters[0].ID != second.ID {
		t.Error("wrong chapter removed")
	}
}

func TestSubjectRepo_ReturnedAggregateIsACopy(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Subjects()

	subject := seedSubject(t, store, 0)
	if _, err := repo.AddChapter(ctx, &domain.Chapter{
		ID: uuid.New(), SubjectID: subject.ID, Name: "a", Difficulty: 1, EstimatedHours: 2,
	}); err != nil {
		t.Fatalf("AddChapter: %v", err)
	}

	got, err := repo.GetByID(ctx, subject.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Chapters[0].Completed = true
	got.Name = "mutated"

	fresh, err := repo.GetByID(ctx, subject.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Chapters[0].Completed || fresh.Name == "mutated" {
		t.Error("mutation through returned aggregate leaked into the store")
	}
}

func TestSubjectRepo_UpdatePriorities_SkipsUnknown(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Subjects()

	subject := seedSubject(t, store, 0)

	err := repo.UpdatePriorities(ctx, map[uuid.UUID]float64{
		subject.ID: 2.5,
		uuid.New(): 9,
	})
	if err != nil {
		t.Fatalf("UpdatePriorities: %v", err)
	}

	got, err := repo.GetByID(ctx, subject.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Priority != 2.5 {
		t.Errorf("priority = %v, want 2.5", got.Priority)
	}
}

func TestAvailabilityRepo_RoundTrip(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Availability()

	if err := repo.SetHours(ctx, 2, 3.5); err != nil {
		t.Fatalf("SetHours: %v", err)
	}

	week, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if week[2] != 3.5 {
		t.Errorf("weekday 2 = %v, want 3.5", week[2])
	}

	if err := repo.SetHours(ctx, 7, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for weekday 7, got %v", err)
	}
}

func TestSessionRepo_CRUD(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	session := domain.StudySession{
		ID:            uuid.New(),
		SubjectID:     uuid.New(),
		Date:          domain.DateOnly(time.Now()),
		DurationHours: 2,
		Mood:          domain.MoodNeutral,
		Origin:        domain.SessionOriginManual,
		CreatedAt:     time.Now(),
	}

	if _, err := repo.Add(ctx, &session); err != nil {
		t.Fatalf("Add: %v", err)
	}

	patch := session
	patch.Completed = true
	patch.CreatedAt = time.Time{} // must be restored from the stored row

	updated, err := repo.Update(ctx, &patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed {
		t.Error("Completed not written")
	}
	if updated.CreatedAt.IsZero() {
		t.Error("CreatedAt must be preserved from the stored row")
	}

	if err := repo.Remove(ctx, session.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := repo.Remove(ctx, session.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSessionRepo_ReplaceGenerated_KeepsManual(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	manual := domain.StudySession{
		ID: uuid.New(), SubjectID: uuid.New(), Date: domain.DateOnly(time.Now()),
		DurationHours: 1, Mood: domain.MoodNeutral, Origin: domain.SessionOriginManual,
	}
	stale := domain.StudySession{
		ID: uuid.New(), SubjectID: uuid.New(), Date: domain.DateOnly(time.Now()),
		DurationHours: 2, Mood: domain.MoodNeutral, Origin: domain.SessionOriginGenerated,
	}
	if _, err := repo.Add(ctx, &manual); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := repo.Add(ctx, &stale); err != nil {
		t.Fatalf("Add: %v", err)
	}

	fresh := domain.StudySession{
		ID: uuid.New(), SubjectID: stale.SubjectID, Date: domain.DateOnly(time.Now().AddDate(0, 0, 1)),
		DurationHours: 3, Mood: domain.MoodNeutral, Origin: domain.SessionOriginGenerated,
	}
	if err := repo.ReplaceGenerated(ctx, []domain.StudySession{fresh}); err != nil {
		t.Fatalf("ReplaceGenerated: %v", err)
	}

	if _, err := repo.GetByID(ctx, stale.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("stale generated session survived replacement")
	}
	if _, err := repo.GetByID(ctx, fresh.ID); err != nil {
		t.Errorf("fresh generated session missing: %v", err)
	}
	if _, err := repo.GetByID(ctx, manual.ID); err != nil {
		t.Errorf("manual session lost: %v", err)
	}
}

func TestSessionRepo_Update_PersistsPromotedOrigin(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	session := domain.StudySession{
		ID: uuid.New(), SubjectID: uuid.New(), Date: domain.DateOnly(time.Now()),
		DurationHours: 2, Mood: domain.MoodNeutral, Origin: domain.SessionOriginGenerated,
	}
	if _, err := repo.Add(ctx, &session); err != nil {
		t.Fatalf("Add: %v", err)
	}

	promoted := session
	promoted.Completed = true
	promoted.Origin = domain.SessionOriginManual

	updated, err := repo.Update(ctx, &promoted)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Origin != domain.SessionOriginManual {
		t.Errorf("origin = %s, want MANUAL", updated.Origin)
	}

	stored, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Origin != domain.SessionOriginManual {
		t.Errorf("stored origin = %s, want MANUAL", stored.Origin)
	}
}

func TestSessionRepo_ReplaceGenerated_DoesNotOverwriteOnIDCollision(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	// A promoted session keeps its generator-derived id; a later allocation
	// for the same slot reuses that id and must not clobber the user's row.
	owned := domain.StudySession{
		ID: uuid.New(), SubjectID: uuid.New(), Date: domain.DateOnly(time.Now()),
		DurationHours: 2, Mood: domain.MoodNeutral, Completed: true,
		Origin: domain.SessionOriginManual,
	}
	if _, err := repo.Add(ctx, &owned); err != nil {
		t.Fatalf("Add: %v", err)
	}

	colliding := owned
	colliding.Completed = false
	colliding.Origin = domain.SessionOriginGenerated

	if err := repo.ReplaceGenerated(ctx, []domain.StudySession{colliding}); err != nil {
		t.Fatalf("ReplaceGenerated: %v", err)
	}

	stored, err := repo.GetByID(ctx, owned.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Completed || stored.Origin != domain.SessionOriginManual {
		t.Errorf("user-owned session clobbered: %+v", stored)
	}
}

func TestSessionRepo_DeleteGeneratedScopes(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	subjectID := uuid.New()
	chapterID := uuid.New()

	bySubject := domain.StudySession{
		ID: uuid.New(), SubjectID: subjectID, Date: domain.DateOnly(time.Now()),
		DurationHours: 1, Mood: domain.MoodNeutral, Origin: domain.SessionOriginGenerated,
	}
	byChapter := domain.StudySession{
		ID: uuid.New(), SubjectID: uuid.New(), ChapterID: &chapterID, Date: domain.DateOnly(time.Now()),
		DurationHours: 1, Mood: domain.MoodNeutral, Origin: domain.SessionOriginGenerated,
	}
	manual := domain.StudySession{
		ID: uuid.New(), SubjectID: subjectID, Date: domain.DateOnly(time.Now()),
		DurationHours: 1, Mood: domain.MoodNeutral, Origin: domain.SessionOriginManual,
	}
	for _, s := range []*domain.StudySession{&bySubject, &byChapter, &manual} {
		if _, err := repo.Add(ctx, s); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := repo.DeleteGeneratedBySubject(ctx, subjectID); err != nil {
		t.Fatalf("DeleteGeneratedBySubject: %v", err)
	}
	if err := repo.DeleteGeneratedByChapter(ctx, chapterID); err != nil {
		t.Fatalf("DeleteGeneratedByChapter: %v", err)
	}

	if _, err := repo.GetByID(ctx, bySubject.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("subject-scoped generated session survived")
	}
	if _, err := repo.GetByID(ctx, byChapter.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("chapter-scoped generated session survived")
	}
	if _, err := repo.GetByID(ctx, manual.ID); err != nil {
		t.Errorf("manual session lost: %v", err)
	}
}

func TestSessionRepo_ListByOrigin(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()
	repo := store.Sessions()

	for i := 0; i < 3; i++ {
		origin := domain.SessionOriginGenerated
		if i == 0 {
			origin = domain.SessionOriginManual
		}
		s := domain.StudySession{
			ID: uuid.New(), SubjectID: uuid.New(), Date: domain.DateOnly(time.Now().AddDate(0, 0, i)),
			DurationHours: 1, Mood: domain.MoodNeutral, Origin: origin,
		}
		if _, err := repo.Add(ctx, &s); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	generated, err := repo.ListByOrigin(ctx, domain.SessionOriginGenerated)
	if err != nil {
		t.Fatalf("ListByOrigin: %v", err)
	}
	if len(generated) != 2 {
		t.Errorf("generated count = %d, want 2", len(generated))
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("total count = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.Before(all[i-1].Date) {
			t.Fatal("sessions not ordered by date")
		}
	}
}
