package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is one scheduled or logged block of study time. SubjectID and
// ChapterID are weak references: the owning subject or chapter may be deleted
// independently, so read paths must treat them as lookup-or-absent.
// ChapterID is nil for freeform manual sessions.
type StudySession struct {
	ID            uuid.UUID
	SubjectID     uuid.UUID
	ChapterID     *uuid.UUID
	Date          time.Time // calendar date, UTC midnight
	DurationHours float64
	Mood          Mood
	Notes         *string
	Completed     bool
	Origin        SessionOrigin
	CreatedAt     time.Time
}

// IsGenerated reports whether the session was produced by the plan generator
// and is therefore replaceable on regeneration.
func (s *StudySession) IsGenerated() bool {
	return s.Origin == SessionOriginGenerated
}
