package config

import (
	"fmt"
	"math"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when storage.driver is %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverMemory, DriverPostgres, c.Storage.Driver)
	}

	if c.Server.RateLimitPerMin <= 0 {
		return fmt.Errorf("server.rate_limit_per_min must be > 0 (got %d)", c.Server.RateLimitPerMin)
	}

	if err := c.Planner.validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	return nil
}

func (p *PlannerConfig) validate() error {
	if p.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be > 0 (got %d)", p.HorizonDays)
	}
	if p.MaxDailyHours <= 0 || p.MaxDailyHours > 24 {
		return fmt.Errorf("max_daily_hours must be in (0, 24] (got %v)", p.MaxDailyHours)
	}
	if p.DifficultyStep < 0 || math.IsNaN(p.DifficultyStep) {
		return fmt.Errorf("difficulty_step must be >= 0 (got %v)", p.DifficultyStep)
	}
	return nil
}
