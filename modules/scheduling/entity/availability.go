package entity

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	AvailabilityMaybe       AvailabilityStatus = "maybe"
)

// PlayerAvailabilitySlot is unique per (user, date, time slot).
type PlayerAvailabilitySlot struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	UserID    uuid.UUID          `db:"user_id" json:"user_id"`
	Date      time.Time          `db:"slot_date" json:"date"`
	TimeSlot  string             `db:"time_slot" json:"time_slot"`
	Status    AvailabilityStatus `db:"status" json:"status"`
	Notes     string             `db:"notes" json:"notes"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}
