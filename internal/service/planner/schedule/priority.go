// Package schedule implements the priority engine and the greedy plan
// generator as pure functions over domain values. Nothing in this package
// performs I/O or reads the clock; the current date is always an input, so
// two calls with identical input produce identical output.
package schedule

import (
	"sort"
	"time"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// Parameters holds all scheduling configuration.
type Parameters struct {
	// HorizonDays is the minimum number of days the generator looks ahead.
	// The effective horizon is max(HorizonDays, latest exam − today).
	HorizonDays int
	// MaxDailyHours caps a single availability entry; it also bounds any
	// generated session's duration.
	MaxDailyHours float64
	// DifficultyStep is the per-level increment of the difficulty weight:
	// weight = 1 + DifficultyStep × (difficulty − 1).
	DifficultyStep float64
	// ReserveManualHours, when true, subtracts manual sessions inside the
	// horizon from their day's budget before allocation. The default policy
	// is workload-first: manual sessions do not consume budget.
	ReserveManualHours bool
}

// DefaultParameters returns the scheduling defaults.
func DefaultParameters() Parameters {
	return Parameters{
		HorizonDays:        90,
		MaxDailyHours:      12,
		DifficultyStep:     0.25,
		ReserveManualHours: false,
	}
}

// DifficultyWeight maps a chapter difficulty (1..3) to its workload weight.
func (p Parameters) DifficultyWeight(difficulty int) float64 {
	if difficulty < domain.MinDifficulty {
		difficulty = domain.MinDifficulty
	}
	return 1 + p.DifficultyStep*float64(difficulty-1)
}

// WeightedRemainingHours is the difficulty-weighted outstanding workload of
// a subject: Σ estimatedHours × weight over incomplete chapters.
func WeightedRemainingHours(p Parameters, s *domain.Subject) float64 {
	var total float64
	for _, ch := range s.Chapters {
		if !ch.Completed {
			total += ch.EstimatedHours * p.DifficultyWeight(ch.Difficulty)
		}
	}
	return total
}

// DaysUntil returns the number of whole calendar days from today until date.
// Both arguments are truncated to their calendar date first.
func DaysUntil(date, today time.Time) int {
	d := domain.DateOnly(date)
	t := domain.DateOnly(today)
	return int(d.Sub(t) / (24 * time.Hour))
}

// Score computes a subject's urgency: weighted remaining hours per day left
// until the exam, i.e. "required hours per day to finish on time". The day
// count is clamped to at least 1 so an overdue exam never divides by zero.
// A subject with no remaining workload scores 0 regardless of its date.
func Score(p Parameters, s *domain.Subject, today time.Time) float64 {
	remaining := WeightedRemainingHours(p, s)
	if remaining == 0 {
		return 0
	}
	days := DaysUntil(s.ExamDate, today)
	if days < 1 {
		days = 1
	}
	return remaining / float64(days)
}

// Overdue reports whether the subject still has workload but its exam date
// is today or already past. Overdue subjects form the maximal urgency class:
// they rank before every scored subject and receive no sessions, since no
// study day strictly before the exam remains.
func Overdue(p Parameters, s *domain.Subject, today time.Time) bool {
	return WeightedRemainingHours(p, s) > 0 && DaysUntil(s.ExamDate, today) <= 0
}

// Rank returns the subjects in scheduling order: overdue subjects first
// (nearer exam, then creation order), then by descending score with ties
// broken by nearer exam date and finally creation order. The input slice is
// not modified. The ordering is total and deterministic.
func Rank(p Parameters, subjects []domain.Subject, today time.Time) []domain.Subject {
	ranked := make([]domain.Subject, len(subjects))
	copy(ranked, subjects)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]

		ao, bo := Overdue(p, a, today), Overdue(p, b, today)
		if ao != bo {
			return ao
		}
		if ao && bo {
			if !a.ExamDate.Equal(b.ExamDate) {
				return a.ExamDate.Before(b.ExamDate)
			}
			return a.Position < b.Position
		}

		as, bs := Score(p, a, today), Score(p, b, today)
		if as != bs {
			return as > bs
		}
		if !a.ExamDate.Equal(b.ExamDate) {
			return a.ExamDate.Before(b.ExamDate)
		}
		return a.Position < b.Position
	})

	return ranked
}
