package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-scheduler/core/config"
	"game-scheduler/core/logger"
	"game-scheduler/modules/scheduling/entity"
	"game-scheduler/modules/scheduling/repository"

	"github.com/google/uuid"
)

var (
	ErrPatternNotFound = errors.New("recurring pattern not found")
	ErrInvalidRange    = errors.New("expansion window start is after its end")
)

// gameNameDateLayout renders occurrence dates in game names, e.g. 1/7/2024.
const gameNameDateLayout = "1/2/2006"

// PatternExpander turns a recurring pattern into concrete games.
type PatternExpander struct {
	patterns    repository.PatternReader
	games       repository.GameCreator
	transactor  repository.Transactor // nil disables atomic expansion
	rangePolicy config.InvalidRangePolicy
}

func NewPatternExpander(
	patterns repository.PatternReader,
	games repository.GameCreator,
	transactor repository.Transactor,
	rangePolicy config.InvalidRangePolicy,
) *PatternExpander {
	if rangePolicy == "" {
		rangePolicy = config.InvalidRangeEmpty
	}
	return &PatternExpander{
		patterns:    patterns,
		games:       games,
		transactor:  transactor,
		rangePolicy: rangePolicy,
	}
}

// Expand creates one game per occurrence of the pattern between startDate and
// endDate inclusive and returns their ids in date order.
//
// Without a transactor a failed create stops the walk and the ids created so
// far are returned with the error. With one, the walk is rolled back and no
// ids are returned.
func (e *PatternExpander) Expand(ctx context.Context, patternID uuid.UUID, startDate, endDate time.Time) ([]uuid.UUID, error) {
	pattern, err := e.patterns.GetPattern(ctx, patternID)
	if err != nil {
		return nil, fmt.Errorf("loading pattern %s: %w", patternID, err)
	}
	if pattern == nil {
		return nil, fmt.Errorf("%w: %s", ErrPatternNotFound, patternID)
	}

	startDate, endDate = truncateDay(startDate), truncateDay(endDate)
	if startDate.After(endDate) {
		if e.rangePolicy == config.InvalidRangeReject {
			return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
				startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
		}
		return []uuid.UUID{}, nil
	}

	if e.transactor == nil {
		return e.walk(ctx, e.games, pattern, startDate, endDate)
	}

	var ids []uuid.UUID
	err = e.transactor.InTransaction(ctx, func(creator repository.GameCreator) error {
		var walkErr error
		ids, walkErr = e.walk(ctx, creator, pattern, startDate, endDate)
		return walkErr
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (e *PatternExpander) walk(
	ctx context.Context,
	creator repository.GameCreator,
	pattern *entity.RecurringPattern,
	startDate, endDate time.Time,
) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}

	cursor := startDate
	for !cursor.After(endDate) {
		if !pattern.Matches(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}

		id, err := creator.CreateGame(ctx, occurrence(pattern, cursor))
		if err != nil {
			logger.Error("PatternExpander:Expand", err,
				"pattern_id", pattern.ID.String(),
				"date", cursor.Format("2006-01-02"),
				"created", len(ids))
			return ids, fmt.Errorf("creating game for %s: %w", cursor.Format("2006-01-02"), err)
		}
		ids = append(ids, id)

		cursor = pattern.Advance(cursor)
	}

	logger.Info("PatternExpander:Expand",
		"pattern_id", pattern.ID.String(),
		"start", startDate.Format("2006-01-02"),
		"end", endDate.Format("2006-01-02"),
		"created", len(ids))
	return ids, nil
}

func occurrence(pattern *entity.RecurringPattern, date time.Time) *entity.Game {
	seriesID := pattern.ID
	return &entity.Game{
		SeriesID:    &seriesID,
		Name:        fmt.Sprintf("%s - %s", pattern.Name, date.Format(gameNameDateLayout)),
		Description: pattern.Description,
		SportType:   entity.DefaultSportType,
		Date:        date,
		Time:        pattern.StartTime,
		Location:    pattern.Location,
		MinPlayers:  pattern.MinPlayers,
		MaxPlayers:  pattern.MaxPlayers,
		Status:      entity.GameStatusScheduled,
		CreatedBy:   pattern.CreatedBy,
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
