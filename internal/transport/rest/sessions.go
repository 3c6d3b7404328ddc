package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
)

func (h *PlannerHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.Sessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type createSessionRequest struct {
	SubjectID     uuid.UUID  `json:"subject_id"`
	ChapterID     *uuid.UUID `json:"chapter_id"`
	Date          string     `json:"date"`
	DurationHours float64    `json:"duration_hours"`
	Mood          string     `json:"mood"`
	Notes         *string    `json:"notes"`
}

func (h *PlannerHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			writeBadRequest(w, "date: must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	session, err := h.svc.AddSession(r.Context(), planner.AddSessionInput{
		SubjectID:     req.SubjectID,
		ChapterID:     req.ChapterID,
		Date:          date,
		DurationHours: req.DurationHours,
		Mood:          domain.Mood(req.Mood),
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

type updateSessionRequest struct {
	Date          *string  `json:"date"`
	DurationHours *float64 `json:"duration_hours"`
	Mood          *string  `json:"mood"`
	Notes         *string  `json:"notes"`
	Completed     *bool    `json:"completed"`
}

func (h *PlannerHandler) updateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}

	var req updateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	input := planner.UpdateSessionInput{
		ID:            id,
		DurationHours: req.DurationHours,
		Notes:         req.Notes,
		Completed:     req.Completed,
	}
	if req.Date != nil {
		parsed, err := time.Parse(dateFormat, *req.Date)
		if err != nil {
			writeBadRequest(w, "date: must be YYYY-MM-DD")
			return
		}
		input.Date = &parsed
	}
	if req.Mood != nil {
		mood := domain.Mood(*req.Mood)
		input.Mood = &mood
	}

	session, err := h.svc.UpdateSession(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *PlannerHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}

	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
