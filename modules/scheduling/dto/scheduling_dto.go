package dto

import (
	"time"

	"game-scheduler/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// CreatePatternRequest for creating a recurring pattern
type CreatePatternRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" validate:"required,oneof=weekly bi_weekly monthly custom"`
	Interval    int    `json:"interval" validate:"min=0"`
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Location    string `json:"location" validate:"required"`
	MinPlayers  int    `json:"min_players" validate:"min=0"`
	MaxPlayers  int    `json:"max_players" validate:"min=0"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	CreatedBy   string `json:"created_by" validate:"required,uuid"`
}

// ExpandPatternRequest for expanding a pattern; empty dates default to the
// pattern's own window
type ExpandPatternRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// OptimalSlotRequest for searching the best time of day
type OptimalSlotRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=840"`
	MinPlayers      int    `json:"min_players" validate:"min=0"`
	MaxPlayers      int    `json:"max_players" validate:"min=0"`
}

// ===================== Response DTOs =====================

type ExpandPatternResponse struct {
	PatternID string   `json:"pattern_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	GameIDs   []string `json:"game_ids"`
	Created   int      `json:"created"`
}

type ConflictsResponse struct {
	GameID    string                      `json:"game_id"`
	Conflicts []entity.SchedulingConflict `json:"conflicts"`
	Total     int                         `json:"total"`
}

type OptimalSlotResponse struct {
	SeriesID string                `json:"series_id"`
	Date     string                `json:"date"`
	Found    bool                  `json:"found"`
	Slot     *entity.CandidateSlot `json:"slot,omitempty"`
}

type PatternResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Interval    int       `json:"interval"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Location    string    `json:"location"`
	MinPlayers  int       `json:"min_players"`
	MaxPlayers  int       `json:"max_players"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ===================== Mapper Functions =====================

func ToPatternResponse(p *entity.RecurringPattern) *PatternResponse {
	return &PatternResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Frequency:   string(p.Frequency),
		Interval:    p.Interval,
		DayOfWeek:   p.DayOfWeek,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Location:    p.Location,
		MinPlayers:  p.MinPlayers,
		MaxPlayers:  p.MaxPlayers,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		CreatedBy:   p.CreatedBy.String(),
		CreatedAt:   p.CreatedAt,
	}
}
