package dto

import (
	"game-scheduler/core/constants"
	"game-scheduler/modules/scheduling/entity"
)

// UpsertAvailabilityRequest sets a player's status for one date and slot
type UpsertAvailabilityRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,max=20"` // e.g. 18:00-20:00
	Status   string `json:"status" validate:"required,oneof=available unavailable maybe"`
	Notes    string `json:"notes" validate:"max=500"`
}

type AvailabilityResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

func ToAvailabilityResponse(s *entity.PlayerAvailabilitySlot) AvailabilityResponse {
	return AvailabilityResponse{
		ID:       s.ID.String(),
		UserID:   s.UserID.String(),
		Date:     s.Date.Format(constants.DateLayout),
		TimeSlot: s.TimeSlot,
		Status:   string(s.Status),
		Notes:    s.Notes,
	}
}
