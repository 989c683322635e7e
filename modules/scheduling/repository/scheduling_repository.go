package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"game-scheduler/core/constants"
	"game-scheduler/core/database"
	"game-scheduler/core/logger"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

type txRunner interface {
	WithTransaction(ctx context.Context, fn func(q database.Querier) error) error
}

// SchedulingRepository reads and writes patterns, games, rosters and
// availability in Postgres.
type SchedulingRepository struct {
	DB database.Querier
	tx txRunner
}

func NewSchedulingRepository(db database.IDatabase) *SchedulingRepository {
	return &SchedulingRepository{DB: db, tx: db}
}

func dateParam(t time.Time) string {
	return t.Format(constants.DateLayout)
}

const gameColumns = `id, series_id, name, description, sport_type, game_date, game_time, location,
	min_players, max_players, status, created_by, created_at, updated_at`

// ===================== Patterns =====================

func (r *SchedulingRepository) CreatePattern(ctx context.Context, pattern *entity.RecurringPattern) (*entity.RecurringPattern, error) {
	query := `
		INSERT INTO recurring_patterns (name, description, frequency, interval_value, day_of_week,
			start_time, end_time, location, min_players, max_players, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, name, description, frequency, interval_value, day_of_week, start_time, end_time,
		          location, min_players, max_players, start_date, end_date, created_by, created_at, updated_at
	`

	var created entity.RecurringPattern
	err := r.DB.GetContext(ctx, &created, query,
		pattern.Name, pattern.Description, pattern.Frequency, pattern.Interval, pattern.DayOfWeek,
		pattern.StartTime, pattern.EndTime, pattern.Location, pattern.MinPlayers, pattern.MaxPlayers,
		dateParam(pattern.StartDate), dateParam(pattern.EndDate), pattern.CreatedBy)
	if err != nil {
		logger.Error("SchedulingRepository:CreatePattern", err)
		return nil, err
	}

	return &created, nil
}

func (r *SchedulingRepository) GetPattern(ctx context.Context, id uuid.UUID) (*entity.RecurringPattern, error) {
	query := `
		SELECT id, name, description, frequency, interval_value, day_of_week, start_time, end_time,
		       location, min_players, max_players, start_date, end_date, created_by, created_at, updated_at
		FROM recurring_patterns WHERE id = $1
	`

	var pattern entity.RecurringPattern
	err := r.DB.GetContext(ctx, &pattern, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SchedulingRepository:GetPattern", err, "pattern_id", id.String())
		return nil, err
	}

	return &pattern, nil
}

// ===================== Games =====================

func (r *SchedulingRepository) CreateGame(ctx context.Context, game *entity.Game) (uuid.UUID, error) {
	query := `
		INSERT INTO games (series_id, name, description, sport_type, game_date, game_time, location,
			min_players, max_players, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id uuid.UUID
	err := r.DB.GetContext(ctx, &id, query,
		game.SeriesID, game.Name, game.Description, game.SportType, dateParam(game.Date), game.Time,
		game.Location, game.MinPlayers, game.MaxPlayers, game.Status, game.CreatedBy)
	if err != nil {
		logger.Error("SchedulingRepository:CreateGame", err, "date", dateParam(game.Date))
		return uuid.Nil, err
	}

	return id, nil
}

func (r *SchedulingRepository) GetGame(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	var game entity.Game
	err := r.DB.GetContext(ctx, &game, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SchedulingRepository:GetGame", err, "game_id", id.String())
		return nil, err
	}

	return &game, nil
}

func (r *SchedulingRepository) FindGamesByDateAndTime(ctx context.Context, date time.Time, timeOfDay string) ([]entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_date = $1 AND game_time = $2 ORDER BY created_at`

	var games []entity.Game
	if err := r.DB.SelectContext(ctx, &games, query, dateParam(date), timeOfDay); err != nil {
		logger.Error("SchedulingRepository:FindGamesByDateAndTime", err)
		return nil, err
	}

	return games, nil
}

func (r *SchedulingRepository) FindGamesByLocationAndDate(ctx context.Context, location string, date time.Time) ([]entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE location = $1 AND game_date = $2 ORDER BY game_time, created_at`

	var games []entity.Game
	if err := r.DB.SelectContext(ctx, &games, query, location, dateParam(date)); err != nil {
		logger.Error("SchedulingRepository:FindGamesByLocationAndDate", err)
		return nil, err
	}

	return games, nil
}

func (r *SchedulingRepository) CountGamesAtDateTime(ctx context.Context, date time.Time, timeOfDay string) (int, error) {
	query := `SELECT COUNT(*) FROM games WHERE game_date = $1 AND game_time = $2`

	var count int
	if err := r.DB.GetContext(ctx, &count, query, dateParam(date), timeOfDay); err != nil {
		logger.Error("SchedulingRepository:CountGamesAtDateTime", err)
		return 0, err
	}

	return count, nil
}

func (r *SchedulingRepository) ListGamesBySeries(ctx context.Context, seriesID uuid.UUID) ([]entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE series_id = $1 ORDER BY game_date, game_time`

	var games []entity.Game
	if err := r.DB.SelectContext(ctx, &games, query, seriesID); err != nil {
		logger.Error("SchedulingRepository:ListGamesBySeries", err)
		return nil, err
	}

	return games, nil
}

// ===================== Rosters =====================

func (r *SchedulingRepository) GetRosterUserIDs(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT tm.user_id
		FROM game_teams gt
		JOIN team_members tm ON tm.team_id = gt.team_id
		WHERE gt.game_id = $1
		ORDER BY tm.user_id
	`

	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, gameID); err != nil {
		logger.Error("SchedulingRepository:GetRosterUserIDs", err)
		return nil, err
	}

	return ids, nil
}

func (r *SchedulingRepository) GetSeriesRosterUserIDs(ctx context.Context, seriesID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT tm.user_id
		FROM series_teams st
		JOIN team_members tm ON tm.team_id = st.team_id
		WHERE st.series_id = $1
		ORDER BY tm.user_id
	`

	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, seriesID); err != nil {
		logger.Error("SchedulingRepository:GetSeriesRosterUserIDs", err)
		return nil, err
	}

	return ids, nil
}

// ===================== Availability =====================

func (r *SchedulingRepository) GetAvailability(ctx context.Context, userID uuid.UUID, date time.Time, timeSlotPrefix string) (*entity.PlayerAvailabilitySlot, error) {
	query := `
		SELECT id, user_id, slot_date, time_slot, status, notes, created_at, updated_at
		FROM player_availability
		WHERE user_id = $1 AND slot_date = $2 AND time_slot LIKE $3 || '%'
		ORDER BY time_slot
		LIMIT 1
	`

	var slot entity.PlayerAvailabilitySlot
	err := r.DB.GetContext(ctx, &slot, query, userID, dateParam(date), timeSlotPrefix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("SchedulingRepository:GetAvailability", err)
		return nil, err
	}

	return &slot, nil
}

// ===================== Transactions =====================

func (r *SchedulingRepository) InTransaction(ctx context.Context, fn func(creator GameCreator) error) error {
	return r.tx.WithTransaction(ctx, func(q database.Querier) error {
		return fn(&SchedulingRepository{DB: q, tx: r.tx})
	})
}
