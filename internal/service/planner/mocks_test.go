package planner

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// Func-field mocks for the private repo interfaces. A nil func means the
// test does not expect that call.

var _ subjectRepo = &subjectRepoMock{}

type subjectRepoMock struct {
	CreateFunc              func(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	NextPositionFunc        func(ctx context.Context) (int, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	ListFunc                func(ctx context.Context) ([]domain.Subject, error)
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	AddChapterFunc          func(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error)
	DeleteChapterFunc       func(ctx context.Context, subjectID, chapterID uuid.UUID) error
	SetChapterCompletedFunc func(ctx context.Context, subjectID, chapterID uuid.UUID, completed bool) (*domain.Chapter, error)
	UpdatePrioritiesFunc    func(ctx context.Context, priorities map[uuid.UUID]float64) error
}

func (m *subjectRepoMock) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if m.CreateFunc == nil {
		panic("subjectRepoMock.CreateFunc is nil but Create was called")
	}
	return m.CreateFunc(ctx, subject)
}

func (m *subjectRepoMock) NextPosition(ctx context.Context) (int, error) {
	if m.NextPositionFunc == nil {
		panic("subjectRepoMock.NextPositionFunc is nil but NextPosition was called")
	}
	return m.NextPositionFunc(ctx)
}

func (m *subjectRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	if m.GetByIDFunc == nil {
		panic("subjectRepoMock.GetByIDFunc is nil but GetByID was called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *subjectRepoMock) List(ctx context.Context) ([]domain.Subject, error) {
	if m.ListFunc == nil {
		panic("subjectRepoMock.ListFunc is nil but List was called")
	}
	return m.ListFunc(ctx)
}

func (m *subjectRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("subjectRepoMock.DeleteFunc is nil but Delete was called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *subjectRepoMock) AddChapter(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error) {
	if m.AddChapterFunc == nil {
		panic("subjectRepoMock.AddChapterFunc is nil but AddChapter was called")
	}
	return m.AddChapterFunc(ctx, chapter)
}

func (m *subjectRepoMock) DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error {
	if m.DeleteChapterFunc == nil {
		panic("subjectRepoMock.DeleteChapterFunc is nil but DeleteChapter was called")
	}
	return m.DeleteChapterFunc(ctx, subjectID, chapterID)
}

func (m *subjectRepoMock) SetChapterCompleted(ctx context.Context, subjectID, chapterID uuid.UUID, completed bool) (*domain.Chapter, error) {
	if m.SetChapterCompletedFunc == nil {
		panic("subjectRepoMock.SetChapterCompletedFunc is nil but SetChapterCompleted was called")
	}
	return m.SetChapterCompletedFunc(ctx, subjectID, chapterID, completed)
}

func (m *subjectRepoMock) UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]float64) error {
	if m.UpdatePrioritiesFunc == nil {
		panic("subjectRepoMock.UpdatePrioritiesFunc is nil but UpdatePriorities was called")
	}
	return m.UpdatePrioritiesFunc(ctx, priorities)
}

var _ availabilityRepo = &availabilityRepoMock{}

type availabilityRepoMock struct {
	GetFunc      func(ctx context.Context) (domain.WeekAvailability, error)
	SetHoursFunc func(ctx context.Context, weekday int, hours float64) error
}

func (m *availabilityRepoMock) Get(ctx context.Context) (domain.WeekAvailability, error) {
	if m.GetFunc == nil {
		panic("availabilityRepoMock.GetFunc is nil but Get was called")
	}
	return m.GetFunc(ctx)
}

func (m *availabilityRepoMock) SetHours(ctx context.Context, weekday int, hours float64) error {
	if m.SetHoursFunc == nil {
		panic("availabilityRepoMock.SetHoursFunc is nil but SetHours was called")
	}
	return m.SetHoursFunc(ctx, weekday, hours)
}

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	ListFunc                     func(ctx context.Context) ([]domain.StudySession, error)
	ListByOriginFunc             func(ctx context.Context, origin domain.SessionOrigin) ([]domain.StudySession, error)
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)
	AddFunc                      func(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	UpdateFunc                   func(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	RemoveFunc                   func(ctx context.Context, id uuid.UUID) error
	ReplaceGeneratedFunc         func(ctx context.Context, sessions []domain.StudySession) error
	DeleteGeneratedBySubjectFunc func(ctx context.Context, subjectID uuid.UUID) error
	DeleteGeneratedByChapterFunc func(ctx context.Context, chapterID uuid.UUID) error
}

func (m *sessionRepoMock) List(ctx context.Context) ([]domain.StudySession, error) {
	if m.ListFunc == nil {
		panic("sessionRepoMock.ListFunc is nil but List was called")
	}
	return m.ListFunc(ctx)
}

func (m *sessionRepoMock) ListByOrigin(ctx context.Context, origin domain.SessionOrigin) ([]domain.StudySession, error) {
	if m.ListByOriginFunc == nil {
		panic("sessionRepoMock.ListByOriginFunc is nil but ListByOrigin was called")
	}
	return m.ListByOriginFunc(ctx, origin)
}

func (m *sessionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	if m.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc is nil but GetByID was called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *sessionRepoMock) Add(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if m.AddFunc == nil {
		panic("sessionRepoMock.AddFunc is nil but Add was called")
	}
	return m.AddFunc(ctx, session)
}

func (m *sessionRepoMock) Update(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if m.UpdateFunc == nil {
		panic("sessionRepoMock.UpdateFunc is nil but Update was called")
	}
	return m.UpdateFunc(ctx, session)
}

func (m *sessionRepoMock) Remove(ctx context.Context, id uuid.UUID) error {
	if m.RemoveFunc == nil {
		panic("sessionRepoMock.RemoveFunc is nil but Remove was called")
	}
	return m.RemoveFunc(ctx, id)
}

func (m *sessionRepoMock) ReplaceGenerated(ctx context.Context, sessions []domain.StudySession) error {
	if m.ReplaceGeneratedFunc == nil {
		panic("sessionRepoMock.ReplaceGeneratedFunc is nil but ReplaceGenerated was called")
	}
	return m.ReplaceGeneratedFunc(ctx, sessions)
}

func (m *sessionRepoMock) DeleteGeneratedBySubject(ctx context.Context, subjectID uuid.UUID) error {
	if m.DeleteGeneratedBySubjectFunc == nil {
		panic("sessionRepoMock.DeleteGeneratedBySubjectFunc is nil but DeleteGeneratedBySubject was called")
	}
	return m.DeleteGeneratedBySubjectFunc(ctx, subjectID)
}

func (m *sessionRepoMock) DeleteGeneratedByChapter(ctx context.Context, chapterID uuid.UUID) error {
	if m.DeleteGeneratedByChapterFunc == nil {
		panic("sessionRepoMock.DeleteGeneratedByChapterFunc is nil but DeleteGeneratedByChapter was called")
	}
	return m.DeleteGeneratedByChapterFunc(ctx, chapterID)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly, no transaction semantics.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
