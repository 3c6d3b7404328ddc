package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// dateFormat is the wire format for calendar dates (exam dates, session dates).
const dateFormat = "2006-01-02"

type subjectResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	ExamDate  string            `json:"exam_date"`
	Color     string            `json:"color"`
	Priority  float64           `json:"priority"`
	Position  int               `json:"position"`
	Chapters  []chapterResponse `json:"chapters"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type chapterResponse struct {
	ID             uuid.UUID `json:"id"`
	SubjectID      uuid.UUID `json:"subject_id"`
	Name           string    `json:"name"`
	Difficulty     int       `json:"difficulty"`
	EstimatedHours float64   `json:"estimated_hours"`
	Completed      bool      `json:"completed"`
	Position       int       `json:"position"`
}

type weekdayHoursResponse struct {
	Weekday int     `json:"weekday"`
	Hours   float64 `json:"hours"`
}

type sessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	SubjectID     uuid.UUID  `json:"subject_id"`
	ChapterID     *uuid.UUID `json:"chapter_id,omitempty"`
	Date          string     `json:"date"`
	DurationHours float64    `json:"duration_hours"`
	Mood          string     `json:"mood"`
	Notes         *string    `json:"notes,omitempty"`
	Completed     bool       `json:"completed"`
	Origin        string     `json:"origin"`
}

type planReportResponse struct {
	GeneratedSessions int                     `json:"generated_sessions"`
	ScheduledHours    float64                 `json:"scheduled_hours"`
	Shortfalls        []shortfallResponse     `json:"shortfalls"`
	Unschedulable     []unschedulableResponse `json:"unschedulable"`
}

type shortfallResponse struct {
	SubjectID    uuid.UUID `json:"subject_id"`
	SubjectName  string    `json:"subject_name"`
	ChapterID    uuid.UUID `json:"chapter_id"`
	ChapterName  string    `json:"chapter_name"`
	MissingHours float64   `json:"missing_hours"`
}

type unschedulableResponse struct {
	SubjectID      uuid.UUID `json:"subject_id"`
	SubjectName    string    `json:"subject_name"`
	ExamDate       string    `json:"exam_date"`
	RemainingHours float64   `json:"remaining_hours"`
}

func toSubjectResponse(s *domain.Subject) subjectResponse {
	chapters := make([]chapterResponse, 0, len(s.Chapters))
	for i := range s.Chapters {
		chapters = append(chapters, toChapterResponse(&s.Chapters[i]))
	}
	return subjectResponse{
		ID:        s.ID,
		Name:      s.Name,
		ExamDate:  s.ExamDate.Format(dateFormat),
		Color:     s.Color,
		Priority:  s.Priority,
		Position:  s.Position,
		Chapters:  chapters,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toChapterResponse(c *domain.Chapter) chapterResponse {
	return chapterResponse{
		ID:             c.ID,
		SubjectID:      c.SubjectID,
		Name:           c.Name,
		Difficulty:     c.Difficulty,
		EstimatedHours: c.EstimatedHours,
		Completed:      c.Completed,
		Position:       c.Position,
	}
}

func toSessionResponse(s *domain.StudySession) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		SubjectID:     s.SubjectID,
		ChapterID:     s.ChapterID,
		Date:          s.Date.Format(dateFormat),
		DurationHours: s.DurationHours,
		Mood:          s.Mood.String(),
		Notes:         s.Notes,
		Completed:     s.Completed,
		Origin:        s.Origin.String(),
	}
}

func toPlanReportResponse(r *domain.PlanReport) planReportResponse {
	out := planReportResponse{
		GeneratedSessions: r.GeneratedSessions,
		ScheduledHours:    r.ScheduledHours,
		Shortfalls:        make([]shortfallResponse, 0, len(r.Shortfalls)),
		Unschedulable:     make([]unschedulableResponse, 0, len(r.Unschedulable)),
	}
	for _, s := range r.Shortfalls {
		out.Shortfalls = append(out.Shortfalls, shortfallResponse{
			SubjectID:    s.SubjectID,
			SubjectName:  s.SubjectName,
			ChapterID:    s.ChapterID,
			ChapterName:  s.ChapterName,
			MissingHours: s.MissingHours,
		})
	}
	for _, u := range r.Unschedulable {
		out.Unschedulable = append(out.Unschedulable, unschedulableResponse{
			SubjectID:      u.SubjectID,
			SubjectName:    u.SubjectName,
			ExamDate:       u.ExamDate.Format(dateFormat),
			RemainingHours: u.RemainingHours,
		})
	}
	return out
}
