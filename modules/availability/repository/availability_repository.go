package repository

import (
	"context"
	"time"

	"game-scheduler/core/constants"
	"game-scheduler/core/database"
	"game-scheduler/core/logger"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

type AvailabilityRepositoryInterface interface {
	Upsert(ctx context.Context, slot *entity.PlayerAvailabilitySlot) (*entity.PlayerAvailabilitySlot, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]entity.PlayerAvailabilitySlot, error)
}

type AvailabilityRepository struct {
	DB database.Querier
}

func NewAvailabilityRepository(db database.Querier) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// Upsert writes the record for (user, date, time slot) in one statement.
func (r *AvailabilityRepository) Upsert(ctx context.Context, slot *entity.PlayerAvailabilitySlot) (*entity.PlayerAvailabilitySlot, error) {
	query := `
		INSERT INTO player_availability (user_id, slot_date, time_slot, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, slot_date, time_slot)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, user_id, slot_date, time_slot, status, notes, created_at, updated_at
	`

	var saved entity.PlayerAvailabilitySlot
	err := r.DB.GetContext(ctx, &saved, query,
		slot.UserID, slot.Date.Format(constants.DateLayout), slot.TimeSlot, slot.Status, slot.Notes)
	if err != nil {
		logger.Error("AvailabilityRepository:Upsert", err, "user_id", slot.UserID.String())
		return nil, err
	}

	return &saved, nil
}

func (r *AvailabilityRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]entity.PlayerAvailabilitySlot, error) {
	query := `
		SELECT id, user_id, slot_date, time_slot, status, notes, created_at, updated_at
		FROM player_availability
		WHERE user_id = $1 AND slot_date = $2
		ORDER BY time_slot
	`

	var slots []entity.PlayerAvailabilitySlot
	if err := r.DB.SelectContext(ctx, &slots, query, userID, date.Format(constants.DateLayout)); err != nil {
		logger.Error("AvailabilityRepository:ListByUserAndDate", err)
		return nil, err
	}

	return slots, nil
}
