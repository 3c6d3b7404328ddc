// Package memory implements the repositories on an in-process store. It is
// the default storage driver: a single-user planner does not need a database
// server to be useful. State lives for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// Store holds all planner state behind one mutex. The repository views below
// share it, so cross-entity operations stay consistent.
type Store struct {
	mu sync.RWMutex

	subjects map[uuid.UUID]domain.Subject
	week     domain.WeekAvailability
	sessions map[uuid.UUID]domain.StudySession

	// txMu serializes RunInTx callbacks so a generation cycle observes and
	// writes a stable snapshot. There is no rollback: callbacks are expected
	// to fail before their first write, which holds for validation and
	// lookup errors.
	txMu sync.Mutex
}

// NewStore creates an empty store with a zeroed availability ledger.
func NewStore() *Store {
	return &Store{
		subjects: make(map[uuid.UUID]domain.Subject),
		sessions: make(map[uuid.UUID]domain.StudySession),
	}
}

// Subjects returns the subject repository view of the store.
func (s *Store) Subjects() *SubjectRepo { return &SubjectRepo{store: s} }

// Availability returns the availability repository view of the store.
func (s *Store) Availability() *AvailabilityRepo { return &AvailabilityRepo{store: s} }

// Sessions returns the session repository view of the store.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{store: s} }

// Tx returns the transaction manager view of the store.
func (s *Store) Tx() *TxManager { return &TxManager{store: s} }

// ---------------------------------------------------------------------------
// Subjects
// ---------------------------------------------------------------------------

// SubjectRepo provides subject and chapter persistence on the shared store.
type SubjectRepo struct {
	store *Store
}

func (r *SubjectRepo) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.subjects[subject.ID]; ok {
		return nil, fmt.Errorf("subject %s: %w", subject.ID, domain.ErrAlreadyExists)
	}

	stored := cloneSubject(*subject)
	stored.Chapters = nil
	r.store.subjects[subject.ID] = stored

	out := cloneSubject(stored)
	return &out, nil
}

func (r *SubjectRepo) NextPosition(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	next := 0
	for _, subject := range r.store.subjects {
		if subject.Position >= next {
			next = subject.Position + 1
		}
	}
	return next, nil
}

func (r *SubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	subject, ok := r.store.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
	}
	out := cloneSubject(subject)
	return &out, nil
}

func (r *SubjectRepo) List(ctx context.Context) ([]domain.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	subjects := make([]domain.Subject, 0, len(r.store.subjects))
	for _, subject := range r.store.subjects {
		subjects = append(subjects, cloneSubject(subject))
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].Position < subjects[j].Position
	})
	return subjects, nil
}

func (r *SubjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.subjects[id]; !ok {
		return fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.subjects, id)
	return nil
}

func (r *SubjectRepo) AddChapter(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subject, ok := r.store.subjects[chapter.SubjectID]
	if !ok {
		return nil, fmt.Errorf("subject %s: %w", chapter.SubjectID, domain.ErrNotFound)
	}

	stored := *chapter
	stored.Position = 0
	for _, existing := range subject.Chapters {
		if existing.Position >= stored.Position {
			stored.Position = existing.Position + 1
		}
	}

	subject.Chapters = append(subject.Chapters, stored)
	r.store.subjects[chapter.SubjectID] = subject

	out := stored
	return &out, nil
}

func (r *SubjectRepo) DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subject, ok := r.store.subjects[subjectID]
	if !ok {
		return fmt.Errorf("subject %s: %w", subjectID, domain.ErrNotFound)
	}

	for i, chapter := range subject.Chapters {
		if chapter.ID == chapterID {
			subject.Chapters = append(subject.Chapters[:i:i], subject.Chapters[i+1:]...)
			r.store.subjects[subjectID] = subject
			return nil
		}
	}
	return fmt.Errorf("chapter %s: %w", chapterID, domain.ErrNotFound)
}

func (r *SubjectRepo) SetChapterCompleted(ctx context.Context, subjectID, chapterID uuid.UUID, completed bool) (*domain.Chapter, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subject, ok := r.store.subjects[subjectID]
	if !ok {
		return nil, fmt.Errorf("subject %s: %w", subjectID, domain.ErrNotFound)
	}

	chapters := append([]domain.Chapter(nil), subject.Chapters...)
	for i := range chapters {
		if chapters[i].ID == chapterID {
			chapters[i].Completed = completed
			subject.Chapters = chapters
			r.store.subjects[subjectID] = subject
			out := chapters[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("chapter %s: %w", chapterID, domain.ErrNotFound)
}

func (r *SubjectRepo) UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, priority := range priorities {
		if subject, ok := r.store.subjects[id]; ok {
			subject.Priority = priority
			r.store.subjects[id] = subject
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Availability
// ---------------------------------------------------------------------------

// AvailabilityRepo provides the weekly ledger on the shared store.
type AvailabilityRepo struct {
	store *Store
}

func (r *AvailabilityRepo) Get(ctx context.Context) (domain.WeekAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.week, nil
}

func (r *AvailabilityRepo) SetHours(ctx context.Context, weekday int, hours float64) error {
	if weekday < 0 || weekday >= domain.DaysPerWeek {
		return fmt.Errorf("weekday %d: %w", weekday, domain.ErrNotFound)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.week[weekday] = hours
	return nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// SessionRepo provides session persistence on the shared store.
type SessionRepo struct {
	store *Store
}

func (r *SessionRepo) List(ctx context.Context) ([]domain.StudySession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(func(domain.StudySession) bool { return true }), nil
}

func (r *SessionRepo) ListByOrigin(ctx context.Context, origin domain.SessionOrigin) ([]domain.StudySession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(func(s domain.StudySession) bool { return s.Origin == origin }), nil
}

// collect returns matching sessions ordered by date. Callers hold the lock.
func (r *SessionRepo) collect(match func(domain.StudySession) bool) []domain.StudySession {
	var sessions []domain.StudySession
	for _, session := range r.store.sessions {
		if match(session) {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].ID.String() < sessions[j].ID.String()
	})
	return sessions
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	out := session
	return &out, nil
}

func (r *SessionRepo) Add(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[session.ID]; ok {
		return nil, fmt.Errorf("session %s: %w", session.ID, domain.ErrAlreadyExists)
	}
	r.store.sessions[session.ID] = *session
	out := *session
	return &out, nil
}

func (r *SessionRepo) Update(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.sessions[session.ID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", session.ID, domain.ErrNotFound)
	}

	updated := *session
	updated.CreatedAt = stored.CreatedAt
	r.store.sessions[session.ID] = updated

	out := updated
	return &out, nil
}

func (r *SessionRepo) Remove(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.sessions, id)
	return nil
}

func (r *SessionRepo) ReplaceGenerated(ctx context.Context, sessions []domain.StudySession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, session := range r.store.sessions {
		if session.IsGenerated() {
			delete(r.store.sessions, id)
		}
	}
	// Surviving rows are manual, including promoted ones that kept their
	// generator-derived id; they win over a colliding fresh allocation.
	for _, session := range sessions {
		if _, ok := r.store.sessions[session.ID]; ok {
			continue
		}
		r.store.sessions[session.ID] = session
	}
	return nil
}

func (r *SessionRepo) DeleteGeneratedBySubject(ctx context.Context, subjectID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, session := range r.store.sessions {
		if session.IsGenerated() && session.SubjectID == subjectID {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

func (r *SessionRepo) DeleteGeneratedByChapter(ctx context.Context, chapterID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, session := range r.store.sessions {
		if session.IsGenerated() && session.ChapterID != nil && *session.ChapterID == chapterID {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

// TxManager serializes multi-step operations on the shared store.
type TxManager struct {
	store *Store
}

// RunInTx executes fn under the store's transaction lock.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(ctx)
}

// cloneSubject deep-copies the chapters slice so callers cannot mutate
// stored state through a returned aggregate.
func cloneSubject(subject domain.Subject) domain.Subject {
	out := subject
	if subject.Chapters != nil {
		out.Chapters = append([]domain.Chapter(nil), subject.Chapters...)
	}
	return out
}
