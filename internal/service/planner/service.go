// Package planner implements the study coordinator: the mutation and query
// API over subjects, the availability ledger, and study sessions, plus plan
// generation. All business rules live here and in the schedule subpackage;
// storage is behind the private repository interfaces below.
package planner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner/schedule"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type subjectRepo interface {
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	NextPosition(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	List(ctx context.Context) ([]domain.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddChapter(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error)
	DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error
	SetChapterCompleted(ctx context.Context, subjectID, chapterID uuid.UUID, completed bool) (*domain.Chapter, error)
	UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]float64) error
}

type availabilityRepo interface {
	Get(ctx context.Context) (domain.WeekAvailability, error)
	SetHours(ctx context.Context, weekday int, hours float64) error
}

type sessionRepo interface {
	List(ctx context.Context) ([]domain.StudySession, error)
	ListByOrigin(ctx context.Context, origin domain.SessionOrigin) ([]domain.StudySession, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)
	Add(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	Update(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	Remove(ctx context.Context, id uuid.UUID) error
	ReplaceGenerated(ctx context.Context, sessions []domain.StudySession) error
	DeleteGeneratedBySubject(ctx context.Context, subjectID uuid.UUID) error
	DeleteGeneratedByChapter(ctx context.Context, chapterID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the study coordinator.
type Service struct {
	subjects     subjectRepo
	availability availabilityRepo
	sessions     sessionRepo
	tx           txManager
	log          *slog.Logger
	params       schedule.Parameters
	now          func() time.Time
}

// NewService creates a new coordinator service.
func NewService(
	log *slog.Logger,
	subjects subjectRepo,
	availability availabilityRepo,
	sessions sessionRepo,
	tx txManager,
	params schedule.Parameters,
) *Service {
	return &Service{
		subjects:     subjects,
		availability: availability,
		sessions:     sessions,
		tx:           tx,
		log:          log.With("service", "planner"),
		params:       params,
		now:          time.Now,
	}
}

// today returns the current calendar date.
func (s *Service) today() time.Time {
	return domain.DateOnly(s.now())
}
