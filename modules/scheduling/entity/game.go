package entity

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// DefaultSportType is stamped on every generated game; patterns do not carry
// a sport yet.
const DefaultSportType = "basketball"

// Game is one scheduled occurrence.
type Game struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SeriesID    *uuid.UUID `db:"series_id" json:"series_id,omitempty"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	SportType   string     `db:"sport_type" json:"sport_type"`
	Date        time.Time  `db:"game_date" json:"date"`
	Time        string     `db:"game_time" json:"time"` // HH:MM
	Location    string     `db:"location" json:"location"`
	MinPlayers  int        `db:"min_players" json:"min_players"`
	MaxPlayers  int        `db:"max_players" json:"max_players"`
	Status      GameStatus `db:"status" json:"status"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
