package service

import (
	"context"
	"fmt"
	"time"

	"game-scheduler/modules/scheduling/entity"
	"game-scheduler/modules/scheduling/repository"

	"github.com/google/uuid"
)

// ConflictDetector checks one game against other games sharing its time or
// venue and against its roster's declared availability.
type ConflictDetector struct {
	games        repository.GameReader
	rosters      repository.RosterReader
	availability repository.AvailabilityReader
	now          func() time.Time
}

func NewConflictDetector(
	games repository.GameReader,
	rosters repository.RosterReader,
	availability repository.AvailabilityReader,
) *ConflictDetector {
	return &ConflictDetector{
		games:        games,
		rosters:      rosters,
		availability: availability,
		now:          time.Now,
	}
}

// Detect returns time, location and player conflicts for gameID, in that
// order. An unknown game yields an empty list.
//
// Time overlap is an exact start-time match on the same date, not an interval
// test. Location conflicts cover the whole day.
func (d *ConflictDetector) Detect(ctx context.Context, gameID uuid.UUID) ([]entity.SchedulingConflict, error) {
	game, err := d.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", gameID, err)
	}
	if game == nil {
		return []entity.SchedulingConflict{}, nil
	}

	conflicts := []entity.SchedulingConflict{}

	sameTime, err := d.games.FindGamesByDateAndTime(ctx, game.Date, game.Time)
	if err != nil {
		return nil, fmt.Errorf("finding games at %s %s: %w", game.Date.Format("2006-01-02"), game.Time, err)
	}
	for _, other := range sameTime {
		if other.ID == game.ID {
			continue
		}
		conflicts = append(conflicts, d.newConflict(game.ID, entity.ConflictTimeOverlap, entity.SeverityHigh,
			fmt.Sprintf("Game %q is scheduled at the same time (%s)", other.Name, other.Time),
			&other.ID, nil))
	}

	sameVenue, err := d.games.FindGamesByLocationAndDate(ctx, game.Location, game.Date)
	if err != nil {
		return nil, fmt.Errorf("finding games at %q on %s: %w", game.Location, game.Date.Format("2006-01-02"), err)
	}
	for _, other := range sameVenue {
		if other.ID == game.ID {
			continue
		}
		conflicts = append(conflicts, d.newConflict(game.ID, entity.ConflictLocation, entity.SeverityCritical,
			fmt.Sprintf("Location %q is already booked by %q at %s", other.Location, other.Name, other.Time),
			&other.ID, nil))
	}

	roster, err := d.rosters.GetRosterUserIDs(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("loading roster for game %s: %w", game.ID, err)
	}
	for _, userID := range distinct(roster) {
		slot, err := d.availability.GetAvailability(ctx, userID, game.Date, game.Time)
		if err != nil {
			return nil, fmt.Errorf("loading availability for %s: %w", userID, err)
		}
		if slot == nil || slot.Status != entity.AvailabilityUnavailable {
			continue
		}
		conflicts = append(conflicts, d.newConflict(game.ID, entity.ConflictPlayerUnavailable, entity.SeverityMedium,
			fmt.Sprintf("Player %s is unavailable for %s", userID, slot.TimeSlot),
			nil, &userID))
	}

	return conflicts, nil
}

func (d *ConflictDetector) newConflict(
	gameID uuid.UUID,
	conflictType entity.ConflictType,
	severity entity.Severity,
	description string,
	conflictingGameID *uuid.UUID,
	userID *uuid.UUID,
) entity.SchedulingConflict {
	return entity.SchedulingConflict{
		ID:                entity.UnsavedConflictID,
		GameID:            gameID,
		ConflictType:      conflictType,
		Severity:          severity,
		Description:       description,
		ConflictingGameID: conflictingGameID,
		UserID:            userID,
		DetectedAt:        d.now(),
	}
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
