package service

import (
	"context"
	"fmt"
	"time"

	"game-scheduler/modules/scheduling/entity"
	"game-scheduler/modules/scheduling/repository"

	"github.com/google/uuid"
)

// AvailabilityPolicy decides how a roster member without any availability
// record is counted.
type AvailabilityPolicy struct {
	AbsentMeansAvailable bool
}

// SlotOptimizer finds the hourly window on a date where most of a series'
// roster can play.
type SlotOptimizer struct {
	games        repository.GameReader
	rosters      repository.RosterReader
	availability repository.AvailabilityReader
	policy       AvailabilityPolicy
	dayStartHour int
	dayEndHour   int
}

func NewSlotOptimizer(
	games repository.GameReader,
	rosters repository.RosterReader,
	availability repository.AvailabilityReader,
	policy AvailabilityPolicy,
	dayStartHour, dayEndHour int,
) *SlotOptimizer {
	return &SlotOptimizer{
		games:        games,
		rosters:      rosters,
		availability: availability,
		policy:       policy,
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
	}
}

// CandidateSlots lists hourly windows of durationMinutes (rounded up to whole
// hours) that start at or after the day start and end by the day end.
func (o *SlotOptimizer) CandidateSlots(durationMinutes int) []string {
	durationHours := (durationMinutes + 59) / 60
	// FindOptimalSlot rejects non-positive durations before they get here.
	if durationHours < 1 {
		durationHours = 1
	}

	var slots []string
	for candidateStartHour := o.dayStartHour; candidateStartHour <= o.dayEndHour-durationHours; candidateStartHour++ {
		candidateEndHour := candidateStartHour + durationHours
		slots = append(slots, fmt.Sprintf("%02d:00-%02d:00", candidateStartHour, candidateEndHour))
	}
	return slots
}

// FindOptimal returns the candidate with the most available roster members
// among those reaching minPlayers. Ties keep the earliest candidate. The
// conflict count is reported but never disqualifies a slot, and maxPlayers is
// advisory: it is not applied as a filter. Returns nil when no candidate
// qualifies.
func (o *SlotOptimizer) FindOptimal(
	ctx context.Context,
	seriesID uuid.UUID,
	date time.Time,
	durationMinutes, minPlayers, maxPlayers int,
) (*entity.CandidateSlot, error) {
	roster, err := o.rosters.GetSeriesRosterUserIDs(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("loading roster for series %s: %w", seriesID, err)
	}
	roster = distinct(roster)

	var best *entity.CandidateSlot
	for _, timeSlot := range o.CandidateSlots(durationMinutes) {
		available, err := o.countAvailable(ctx, roster, date, timeSlot)
		if err != nil {
			return nil, err
		}
		if available < minPlayers {
			continue
		}
		if best != nil && available <= best.AvailableCount {
			continue
		}

		startTime := timeSlot[:5]
		conflicts, err := o.games.CountGamesAtDateTime(ctx, date, startTime)
		if err != nil {
			return nil, fmt.Errorf("counting games at %s: %w", startTime, err)
		}

		best = &entity.CandidateSlot{
			TimeSlot:       timeSlot,
			AvailableCount: available,
			ConflictCount:  conflicts,
		}
	}

	return best, nil
}

func (o *SlotOptimizer) countAvailable(ctx context.Context, roster []uuid.UUID, date time.Time, timeSlot string) (int, error) {
	count := 0
	for _, userID := range roster {
		slot, err := o.availability.GetAvailability(ctx, userID, date, timeSlot)
		if err != nil {
			return 0, fmt.Errorf("loading availability for %s: %w", userID, err)
		}
		if o.isAvailable(slot) {
			count++
		}
	}
	return count, nil
}

func (o *SlotOptimizer) isAvailable(slot *entity.PlayerAvailabilitySlot) bool {
	if slot == nil {
		return o.policy.AbsentMeansAvailable
	}
	return slot.Status != entity.AvailabilityUnavailable
}
