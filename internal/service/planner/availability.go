package planner

import (
	"context"
	"fmt"

	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// UpdateAvailability sets the hour budget for one day of the week. It never
// triggers regeneration; generating a plan is a separate, explicit action.
func (s *Service) UpdateAvailability(ctx context.Context, input UpdateAvailabilityInput) error {
	if err := input.Validate(s.params.MaxDailyHours); err != nil {
		return err
	}

	if err := s.availability.SetHours(ctx, input.Weekday, input.Hours); err != nil {
		return fmt.Errorf("set availability: %w", err)
	}

	s.log.InfoContext(ctx, "availability updated",
		"weekday", input.Weekday,
		"hours", input.Hours,
	)
	return nil
}

// Availability returns a snapshot of the weekly availability table.
func (s *Service) Availability(ctx context.Context) (domain.WeekAvailability, error) {
	avail, err := s.availability.Get(ctx)
	if err != nil {
		return domain.WeekAvailability{}, fmt.Errorf("get availability: %w", err)
	}
	return avail, nil
}
