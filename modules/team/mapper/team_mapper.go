package mapper

import (
	"game-scheduler/modules/team/dto"
	"game-scheduler/modules/team/entity"
)

func ToTeamEntity(req *dto.TeamRequest) *entity.Team {
	return &entity.Team{
		Name:        req.Name,
		Description: req.Description,
	}
}

func ToTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTeamPaginationResponse(page *entity.PaginatedTeams) *dto.PaginatedTeamResponse {
	resp := &dto.PaginatedTeamResponse{}
	resp.Items = []dto.TeamResponse{}
	if page == nil {
		return resp
	}

	for i := range page.Items {
		resp.Items = append(resp.Items, *ToTeamResponse(&page.Items[i]))
	}
	resp.TotalItems = page.TotalItems
	resp.PageNumber = page.PageNumber
	resp.PageSize = page.PageSize
	if page.PageSize > 0 {
		resp.TotalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}
	return resp
}
