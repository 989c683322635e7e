package dto

import (
	"time"

	"game-scheduler/core/entity"

	"github.com/google/uuid"
)

type TeamRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaginatedTeamResponse struct {
	entity.Pagination[TeamResponse]
	TotalPages int `json:"total_pages"`
}

type AddMembersRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1,dive,required"`
}

type TeamMembersResponse struct {
	TeamID  uuid.UUID   `json:"team_id"`
	UserIDs []uuid.UUID `json:"user_ids"`
}

// ListTeamsQuery is bound from the query string
type ListTeamsQuery struct {
	Search     string `query:"search"`
	PageNumber int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
)

func (q *ListTeamsQuery) Normalize() {
	if q.PageNumber < 1 {
		q.PageNumber = DefaultPageNumber
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
}
