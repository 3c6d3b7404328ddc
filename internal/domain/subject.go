package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subject is a top-level study topic with an exam deadline and its chapters.
// Chapters are owned by the subject and ordered by Position.
//
// Priority is derived: it is recomputed from the exam date and outstanding
// workload on every plan generation and is never assigned independently.
type Subject struct {
	ID        uuid.UUID
	Name      string
	ExamDate  time.Time // calendar date, UTC midnight
	Color     string
	Priority  float64
	Position  int // creation order, used for deterministic tie-breaks
	Chapters  []Chapter
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Chapter is one unit of study work within a subject.
type Chapter struct {
	ID             uuid.UUID
	SubjectID      uuid.UUID
	Name           string
	Difficulty     int // 1..3
	EstimatedHours float64
	Completed      bool
	Position       int
	CreatedAt      time.Time
}

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// IncompleteChapters returns the subject's incomplete chapters in stored order.
func (s *Subject) IncompleteChapters() []Chapter {
	var out []Chapter
	for _, ch := range s.Chapters {
		if !ch.Completed {
			out = append(out, ch)
		}
	}
	return out
}

// RemainingHours is the sum of estimated hours over incomplete chapters.
// A completed chapter contributes zero remaining workload.
func (s *Subject) RemainingHours() float64 {
	var total float64
	for _, ch := range s.Chapters {
		if !ch.Completed {
			total += ch.EstimatedHours
		}
	}
	return total
}

// ChapterByID returns the chapter with the given id, or false if absent.
func (s *Subject) ChapterByID(id uuid.UUID) (Chapter, bool) {
	for _, ch := range s.Chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chapter{}, false
}

// subjectPalette supplies default display colors, cycled by creation order.
var subjectPalette = []string{
	"#6366F1", // indigo
	"#14B8A6", // teal
	"#F59E0B", // amber
	"#F43F5E", // rose
	"#8B5CF6", // violet
	"#10B981", // emerald
	"#0EA5E9", // sky
	"#F97316", // orange
}

// DefaultColor returns the palette color for a subject created at the given
// position. Display-only.
func DefaultColor(position int) string {
	if position < 0 {
		position = 0
	}
	return subjectPalette[position%len(subjectPalette)]
}

// DateOnly truncates t to its calendar date (UTC midnight). Exam dates and
// session dates are always stored in this form.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
