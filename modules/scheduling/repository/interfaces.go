package repository

import (
	"context"
	"time"

	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

// Lookups return (nil, nil) when the row does not exist.

type PatternReader interface {
	GetPattern(ctx context.Context, id uuid.UUID) (*entity.RecurringPattern, error)
}

type GameCreator interface {
	CreateGame(ctx context.Context, game *entity.Game) (uuid.UUID, error)
}

type GameReader interface {
	GetGame(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	FindGamesByDateAndTime(ctx context.Context, date time.Time, timeOfDay string) ([]entity.Game, error)
	FindGamesByLocationAndDate(ctx context.Context, location string, date time.Time) ([]entity.Game, error)
	CountGamesAtDateTime(ctx context.Context, date time.Time, timeOfDay string) (int, error)
}

type RosterReader interface {
	GetRosterUserIDs(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error)
	GetSeriesRosterUserIDs(ctx context.Context, seriesID uuid.UUID) ([]uuid.UUID, error)
}

type AvailabilityReader interface {
	// GetAvailability returns the record for userID on date whose time slot
	// starts with timeSlotPrefix.
	GetAvailability(ctx context.Context, userID uuid.UUID, date time.Time, timeSlotPrefix string) (*entity.PlayerAvailabilitySlot, error)
}

// Transactor runs fn with a GameCreator bound to a single transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(creator GameCreator) error) error
}

type SchedulingRepositoryInterface interface {
	PatternReader
	GameCreator
	GameReader
	RosterReader
	AvailabilityReader
	Transactor

	CreatePattern(ctx context.Context, pattern *entity.RecurringPattern) (*entity.RecurringPattern, error)
	ListGamesBySeries(ctx context.Context, seriesID uuid.UUID) ([]entity.Game, error)
}
