package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
)

type createSubjectRequest struct {
	Name     string `json:"name"`
	ExamDate string `json:"exam_date"`
}

func (h *PlannerHandler) createSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var examDate time.Time
	if req.ExamDate != "" {
		parsed, err := time.Parse(dateFormat, req.ExamDate)
		if err != nil {
			writeBadRequest(w, "exam_date: must be YYYY-MM-DD")
			return
		}
		examDate = parsed
	}

	subject, err := h.svc.AddSubject(r.Context(), planner.AddSubjectInput{
		Name:     req.Name,
		ExamDate: examDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubjectResponse(subject))
}

func (h *PlannerHandler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.svc.Subjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]subjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, toSubjectResponse(&subjects[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PlannerHandler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}

	if err := h.svc.DeleteSubject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createChapterRequest struct {
	Name           string  `json:"name"`
	Difficulty     int     `json:"difficulty"`
	EstimatedHours float64 `json:"estimated_hours"`
}

func (h *PlannerHandler) createChapter(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}

	var req createChapterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	chapter, err := h.svc.AddChapter(r.Context(), planner.AddChapterInput{
		SubjectID:      subjectID,
		Name:           req.Name,
		Difficulty:     req.Difficulty,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChapterResponse(chapter))
}

func (h *PlannerHandler) deleteChapter(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}
	chapterID, ok := pathUUID(r, "chapterID")
	if !ok {
		writeBadRequest(w, "chapterID: must be a UUID")
		return
	}

	if err := h.svc.DeleteChapter(r.Context(), subjectID, chapterID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlannerHandler) toggleChapter(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathUUID(r, "id")
	if !ok {
		writeBadRequest(w, "id: must be a UUID")
		return
	}
	chapterID, ok := pathUUID(r, "chapterID")
	if !ok {
		writeBadRequest(w, "chapterID: must be a UUID")
		return
	}

	chapter, err := h.svc.ToggleChapterComplete(r.Context(), subjectID, chapterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChapterResponse(chapter))
}
