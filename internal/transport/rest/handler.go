// Package rest exposes the planner over plain net/http with JSON bodies.
package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
)

// plannerService is the slice of the coordinator the handlers need.
type plannerService interface {
	AddSubject(ctx context.Context, input planner.AddSubjectInput) (*domain.Subject, error)
	Subjects(ctx context.Context) ([]domain.Subject, error)
	DeleteSubject(ctx context.Context, id uuid.UUID) error
	AddChapter(ctx context.Context, input planner.AddChapterInput) (*domain.Chapter, error)
	DeleteChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error
	ToggleChapterComplete(ctx context.Context, subjectID, chapterID uuid.UUID) (*domain.Chapter, error)
	Availability(ctx context.Context) (domain.WeekAvailability, error)
	UpdateAvailability(ctx context.Context, input planner.UpdateAvailabilityInput) error
	GeneratePlan(ctx context.Context) (*domain.PlanReport, error)
	Sessions(ctx context.Context) ([]domain.StudySession, error)
	AddSession(ctx context.Context, input planner.AddSessionInput) (*domain.StudySession, error)
	UpdateSession(ctx context.Context, input planner.UpdateSessionInput) (*domain.StudySession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// PlannerHandler serves the /api endpoints.
type PlannerHandler struct {
	svc plannerService
}

// NewPlannerHandler creates a PlannerHandler.
func NewPlannerHandler(svc plannerService) *PlannerHandler {
	return &PlannerHandler{svc: svc}
}

// Register attaches all planner routes to the mux.
func (h *PlannerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/subjects", h.createSubject)
	mux.HandleFunc("GET /api/subjects", h.listSubjects)
	mux.HandleFunc("DELETE /api/subjects/{id}", h.deleteSubject)
	mux.HandleFunc("POST /api/subjects/{id}/chapters", h.createChapter)
	mux.HandleFunc("DELETE /api/subjects/{id}/chapters/{chapterID}", h.deleteChapter)
	mux.HandleFunc("POST /api/subjects/{id}/chapters/{chapterID}/toggle", h.toggleChapter)

	mux.HandleFunc("GET /api/availability", h.getAvailability)
	mux.HandleFunc("PUT /api/availability/{weekday}", h.putAvailability)

	mux.HandleFunc("POST /api/plan/generate", h.generatePlan)

	mux.HandleFunc("GET /api/sessions", h.listSessions)
	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("PATCH /api/sessions/{id}", h.updateSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.deleteSession)
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
