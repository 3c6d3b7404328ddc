package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

const maxNameLength = 200

// AddSubjectInput holds the parameters for creating a subject.
type AddSubjectInput struct {
	Name     string
	ExamDate time.Time
}

// Validate checks all fields and collects all errors. The exam date must not
// be before today; stored subjects may still drift into the past afterwards,
// which the priority engine treats as overdue.
func (i *AddSubjectInput) Validate(today time.Time) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.ExamDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "exam_date", Message: "required"})
	} else if domain.DateOnly(i.ExamDate).Before(domain.DateOnly(today)) {
		errs = append(errs, domain.FieldError{Field: "exam_date", Message: "must not be in the past"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddChapterInput holds the parameters for adding a chapter to a subject.
type AddChapterInput struct {
	SubjectID      uuid.UUID
	Name           string
	Difficulty     int
	EstimatedHours float64
}

// Validate checks all fields and collects all errors.
func (i *AddChapterInput) Validate() error {
	var errs []domain.FieldError

	if i.SubjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "subject_id", Message: "required"})
	}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Difficulty < domain.MinDifficulty || i.Difficulty > domain.MaxDifficulty {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be between 1 and 3"})
	}
	if i.EstimatedHours <= 0 {
		errs = append(errs, domain.FieldError{Field: "estimated_hours", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateAvailabilityInput holds the parameters for setting one weekday's
// hour budget.
type UpdateAvailabilityInput struct {
	Weekday int
	Hours   float64
}

// Validate checks the weekday index and the hour bounds. Out-of-range hours
// are rejected rather than silently clamped.
func (i *UpdateAvailabilityInput) Validate(maxDailyHours float64) error {
	var errs []domain.FieldError

	if i.Weekday < 0 || i.Weekday >= domain.DaysPerWeek {
		errs = append(errs, domain.FieldError{Field: "weekday", Message: "must be between 0 (Sunday) and 6"})
	}
	if i.Hours < 0 {
		errs = append(errs, domain.FieldError{Field: "hours", Message: "must be non-negative"})
	}
	if i.Hours > maxDailyHours {
		errs = append(errs, domain.FieldError{Field: "hours", Message: "exceeds the daily maximum"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddSessionInput holds the parameters for logging a manual study session.
// ChapterID is optional: manual sessions may be freeform.
type AddSessionInput struct {
	SubjectID     uuid.UUID
	ChapterID     *uuid.UUID
	Date          time.Time
	DurationHours float64
	Mood          domain.Mood
	Notes         *string
}

// Validate checks all fields and collects all errors.
func (i *AddSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SubjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "subject_id", Message: "required"})
	}
	if i.ChapterID != nil && *i.ChapterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "chapter_id", Message: "must be a valid id when set"})
	}
	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}
	if i.DurationHours <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_hours", Message: "must be positive"})
	}
	if i.Mood != "" && !i.Mood.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mood", Message: "must be FOCUSED, MOTIVATED, NEUTRAL, TIRED, or DISTRACTED"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSessionInput holds a partial update for an existing session; nil
// fields are left unchanged. Completion toggling uses Completed alone.
type UpdateSessionInput struct {
	ID            uuid.UUID
	Date          *time.Time
	DurationHours *float64
	Mood          *domain.Mood
	Notes         *string
	Completed     *bool
}

// Validate checks the provided fields and collects all errors.
func (i *UpdateSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Date != nil && i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be a valid date when set"})
	}
	if i.DurationHours != nil && *i.DurationHours <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_hours", Message: "must be positive"})
	}
	if i.Mood != nil && !i.Mood.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mood", Message: "must be FOCUSED, MOTIVATED, NEUTRAL, TIRED, or DISTRACTED"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
