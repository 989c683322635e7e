package entity

import "game-scheduler/core/entity"

// Team is a roster unit. Games and series reach players through their teams.
type Team struct {
	Name        string `db:"name"`
	Description string `db:"description"`

	entity.BaseEntity
}

type PaginatedTeams = entity.Pagination[Team]
