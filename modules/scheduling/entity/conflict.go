package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConflictType string

const (
	ConflictTimeOverlap       ConflictType = "time_overlap"
	ConflictLocation          ConflictType = "location_conflict"
	ConflictPlayerUnavailable ConflictType = "player_unavailable"
	ConflictWeather           ConflictType = "weather"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// UnsavedConflictID marks a conflict that has not been persisted.
var UnsavedConflictID = uuid.Nil

// SchedulingConflict is produced fresh on every detection run.
type SchedulingConflict struct {
	ID                uuid.UUID    `json:"id"`
	GameID            uuid.UUID    `json:"game_id"`
	ConflictType      ConflictType `json:"conflict_type"`
	Severity          Severity     `json:"severity"`
	Description       string       `json:"description"`
	ConflictingGameID *uuid.UUID   `json:"conflicting_game_id,omitempty"`
	UserID            *uuid.UUID   `json:"user_id,omitempty"`
	Resolved          bool         `json:"resolved"`
	DetectedAt        time.Time    `json:"detected_at"`
}

// CandidateSlot is one hourly window scored by the slot optimizer.
type CandidateSlot struct {
	TimeSlot       string `json:"time_slot"` // HH:MM-HH:MM
	AvailableCount int    `json:"available_count"`
	ConflictCount  int    `json:"conflict_count"`
}
