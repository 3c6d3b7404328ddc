package domain

// DaysPerWeek is the size of the availability table. The table is fixed:
// entries are never added or removed, only their hour values change.
const DaysPerWeek = 7

// WeekAvailability is the weekly recurring time budget, one entry per
// day-of-week. Index 0 is Sunday, matching time.Weekday.
type WeekAvailability [DaysPerWeek]float64

// HoursOn returns the available hours for the given weekday index (0..6).
// Out-of-range indexes return 0.
func (w WeekAvailability) HoursOn(weekday int) float64 {
	if weekday < 0 || weekday >= DaysPerWeek {
		return 0
	}
	return w[weekday]
}

// TotalWeeklyHours sums all seven entries.
func (w WeekAvailability) TotalWeeklyHours() float64 {
	var total float64
	for _, h := range w {
		total += h
	}
	return total
}
