package domain

// Mood is the learner's self-reported state for a session. Informational
// only; it never influences scheduling.
type Mood string

const (
	MoodFocused    Mood = "FOCUSED"
	MoodMotivated  Mood = "MOTIVATED"
	MoodNeutral    Mood = "NEUTRAL"
	MoodTired      Mood = "TIRED"
	MoodDistracted Mood = "DISTRACTED"
)

func (m Mood) String() string { return string(m) }

func (m Mood) IsValid() bool {
	switch m {
	case MoodFocused, MoodMotivated, MoodNeutral, MoodTired, MoodDistracted:
		return true
	}
	return false
}

// SessionOrigin records how a session came to exist. Provenance is tracked
// explicitly so regeneration never has to guess which sessions it owns.
type SessionOrigin string

const (
	SessionOriginGenerated SessionOrigin = "GENERATED"
	SessionOriginManual    SessionOrigin = "MANUAL"
)

func (o SessionOrigin) String() string { return string(o) }

func (o SessionOrigin) IsValid() bool {
	switch o {
	case SessionOriginGenerated, SessionOriginManual:
		return true
	}
	return false
}
