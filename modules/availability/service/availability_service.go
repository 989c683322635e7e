package service

import (
	"context"
	"time"

	"game-scheduler/core/constants"
	"game-scheduler/core/errors"
	"game-scheduler/modules/availability/dto"
	"game-scheduler/modules/availability/repository"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

type AvailabilityServiceInterface interface {
	Upsert(ctx context.Context, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
	ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]dto.AvailabilityResponse, *errors.AppError)
}

type AvailabilityService struct {
	repo repository.AvailabilityRepositoryInterface
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

func (s *AvailabilityService) Upsert(ctx context.Context, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid user ID", err)
	}
	date, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date", err)
	}

	saved, err := s.repo.Upsert(ctx, &entity.PlayerAvailabilitySlot{
		UserID:   userID,
		Date:     date,
		TimeSlot: req.TimeSlot,
		Status:   entity.AvailabilityStatus(req.Status),
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save availability", err)
	}

	resp := dto.ToAvailabilityResponse(saved)
	return &resp, nil
}

func (s *AvailabilityService) ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]dto.AvailabilityResponse, *errors.AppError) {
	day, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date", err)
	}

	slots, err := s.repo.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get availability", err)
	}

	result := make([]dto.AvailabilityResponse, 0, len(slots))
	for i := range slots {
		result = append(result, dto.ToAvailabilityResponse(&slots[i]))
	}
	return result, nil
}
