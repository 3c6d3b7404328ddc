package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanReport summarizes the outcome of a plan generation. Shortfalls and
// unschedulable subjects are report data for the caller to surface, not
// errors: generation always completes with a best-effort plan.
type PlanReport struct {
	GeneratedSessions int
	ScheduledHours    float64
	Shortfalls        []ChapterShortfall
	Unschedulable     []UnschedulableSubject
}

// ChapterShortfall records hours of a chapter that could not be placed
// before the subject's exam given current availability.
type ChapterShortfall struct {
	SubjectID    uuid.UUID
	SubjectName  string
	ChapterID    uuid.UUID
	ChapterName  string
	MissingHours float64
}

// UnschedulableSubject is a subject with remaining workload whose exam date
// is today or already past; no day before the exam can receive sessions.
type UnschedulableSubject struct {
	SubjectID      uuid.UUID
	SubjectName    string
	ExamDate       time.Time
	RemainingHours float64
}

// HasShortfall reports whether any chapter was left partially or fully
// unplaced.
func (r *PlanReport) HasShortfall() bool {
	return len(r.Shortfalls) > 0 || len(r.Unschedulable) > 0
}
