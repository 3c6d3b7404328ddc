package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// sessionNamespace is the UUIDv5 namespace for generated session ids. An id
// is a pure function of (subject, chapter, date), so regenerating from
// identical input yields the identical session set.
var sessionNamespace = uuid.MustParse("9f2c1d6e-4a8b-4f3c-9e0d-7b5a2c8d1e4f")

// epsilon absorbs float drift when comparing remaining hours to zero.
const epsilon = 1e-9

// Input is everything the generator reads. ManualSessions is consulted only
// when Parameters.ReserveManualHours is set.
type Input struct {
	Subjects       []domain.Subject
	Availability   domain.WeekAvailability
	Today          time.Time
	ManualSessions []domain.StudySession
}

// Result is the replacement set of generated sessions plus the report the
// caller surfaces to the user.
type Result struct {
	Sessions []domain.StudySession
	Report   domain.PlanReport
}

// Generate produces the full ordered list of generated study sessions
// covering every incomplete chapter's remaining hours, greedy and
// deterministic:
//
//  1. Day budgets run from today to the horizon end, seeded from the
//     availability ledger entry for each day's weekday.
//  2. Subjects are walked in Rank order, chapters in stored order.
//  3. Each chapter scans forward over days strictly before its subject's
//     exam date, allocating min(chapter remaining, day remaining) per day.
//  4. Hours that cannot be placed before the exam become a reported
//     shortfall; generation never fails.
//
// Subjects whose exam is today or past are surfaced as unschedulable and
// receive no sessions. Zero total availability yields an empty session set.
func Generate(p Parameters, in Input) Result {
	today := domain.DateOnly(in.Today)
	ranked := Rank(p, in.Subjects, today)

	days := buildDays(p, in, today)

	var (
		sessions []domain.StudySession
		report   domain.PlanReport
	)

	for i := range ranked {
		subj := &ranked[i]
		if subj.RemainingHours() < epsilon {
			continue
		}

		examDate := domain.DateOnly(subj.ExamDate)
		if !today.Before(examDate) {
			report.Unschedulable = append(report.Unschedulable, domain.UnschedulableSubject{
				SubjectID:      subj.ID,
				SubjectName:    subj.Name,
				ExamDate:       examDate,
				RemainingHours: subj.RemainingHours(),
			})
			continue
		}

		for _, ch := range subj.IncompleteChapters() {
			remaining := ch.EstimatedHours

			for d := range days {
				if remaining < epsilon {
					break
				}
				// A subject must finish strictly before its exam day.
				if !days[d].date.Before(examDate) {
					break
				}
				alloc := min(remaining, days[d].remaining)
				if alloc < epsilon {
					continue
				}

				sessions = append(sessions, newGeneratedSession(subj.ID, ch.ID, days[d].date, alloc))
				remaining -= alloc
				days[d].remaining -= alloc
				report.ScheduledHours += alloc
			}

			if remaining > epsilon {
				report.Shortfalls = append(report.Shortfalls, domain.ChapterShortfall{
					SubjectID:    subj.ID,
					SubjectName:  subj.Name,
					ChapterID:    ch.ID,
					ChapterName:  ch.Name,
					MissingHours: remaining,
				})
			}
		}
	}

	report.GeneratedSessions = len(sessions)
	return Result{Sessions: sessions, Report: report}
}

// day carries one calendar day's remaining budget during allocation.
type day struct {
	date      time.Time
	remaining float64
}

// buildDays creates the horizon day sequence with per-day budgets from the
// ledger, optionally reduced by manual sessions under the reserve policy.
func buildDays(p Parameters, in Input, today time.Time) []day {
	horizon := p.HorizonDays
	for i := range in.Subjects {
		if d := DaysUntil(in.Subjects[i].ExamDate, today); d > horizon {
			horizon = d
		}
	}

	days := make([]day, horizon)
	for i := range days {
		date := today.AddDate(0, 0, i)
		days[i] = day{
			date:      date,
			remaining: in.Availability.HoursOn(int(date.Weekday())),
		}
	}

	if p.ReserveManualHours {
		byDate := make(map[time.Time]float64)
		for _, s := range in.ManualSessions {
			byDate[domain.DateOnly(s.Date)] += s.DurationHours
		}
		for i := range days {
			days[i].remaining = max(0, days[i].remaining-byDate[days[i].date])
		}
	}

	return days
}

// newGeneratedSession builds one allocation entry. The id is deterministic
// over (subject, chapter, date); there is at most one generated session per
// chapter per day, so the triple is unique.
func newGeneratedSession(subjectID, chapterID uuid.UUID, date time.Time, hours float64) domain.StudySession {
	chID := chapterID
	name := fmt.Sprintf("%s/%s/%s", subjectID, chapterID, date.Format("2006-01-02"))
	return domain.StudySession{
		ID:            uuid.NewSHA1(sessionNamespace, []byte(name)),
		SubjectID:     subjectID,
		ChapterID:     &chID,
		Date:          date,
		DurationHours: hours,
		Mood:          domain.MoodNeutral,
		Completed:     false,
		Origin:        domain.SessionOriginGenerated,
	}
}
