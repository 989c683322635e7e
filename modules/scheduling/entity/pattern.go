package entity

import (
	"fmt"
	"time"

	"game-scheduler/core/constants"

	"github.com/google/uuid"
)

// Frequency is the cadence of a recurring pattern.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi_weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyCustom   Frequency = "custom"
)

// RecurringPattern is the template a series of games is generated from.
type RecurringPattern struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Frequency   Frequency `db:"frequency" json:"frequency"`
	Interval    int       `db:"interval_value" json:"interval"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"` // 0=Sunday
	StartTime   string    `db:"start_time" json:"start_time"`   // HH:MM
	EndTime     string    `db:"end_time" json:"end_time"`       // HH:MM
	Location    string    `db:"location" json:"location"`
	MinPlayers  int       `db:"min_players" json:"min_players"`
	MaxPlayers  int       `db:"max_players" json:"max_players"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	CreatedBy   uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Validate checks the pattern invariants.
func (p *RecurringPattern) Validate() error {
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("end date %s must be after start date %s",
			p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
		return fmt.Errorf("day of week %d out of range 0-6", p.DayOfWeek)
	}
	switch p.Frequency {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
	case FrequencyCustom:
		if p.Interval < 1 {
			return fmt.Errorf("custom frequency needs interval >= 1, got %d", p.Interval)
		}
	default:
		return fmt.Errorf("unknown frequency %q", p.Frequency)
	}
	if _, err := time.Parse(constants.TimeOfDayLayout, p.StartTime); err != nil {
		return fmt.Errorf("invalid start time %q", p.StartTime)
	}
	if _, err := time.Parse(constants.TimeOfDayLayout, p.EndTime); err != nil {
		return fmt.Errorf("invalid end time %q", p.EndTime)
	}
	if p.MaxPlayers > 0 && p.MinPlayers > p.MaxPlayers {
		return fmt.Errorf("min players %d exceeds max players %d", p.MinPlayers, p.MaxPlayers)
	}
	return nil
}

// Matches reports whether d falls on the pattern's weekday.
func (p *RecurringPattern) Matches(d time.Time) bool {
	return int(d.Weekday()) == p.DayOfWeek
}

// Advance returns the cursor position after an occurrence on d: one period
// later. Unknown frequencies fall back to weekly.
func (p *RecurringPattern) Advance(d time.Time) time.Time {
	switch p.Frequency {
	case FrequencyBiWeekly:
		return d.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return d.AddDate(0, 1, 0)
	case FrequencyCustom:
		return d.AddDate(0, 0, p.Interval*7)
	default:
		return d.AddDate(0, 0, 7)
	}
}
