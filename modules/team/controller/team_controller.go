package controller

import (
	"game-scheduler/core/controller"
	"game-scheduler/core/errors"
	"game-scheduler/modules/team/dto"
	"game-scheduler/modules/team/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
	}
}

// CreateTeam handles POST /teams
// @Summary Create a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body dto.TeamRequest true "Team"
// @Success 200 {object} dto.TeamResponse
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var req dto.TeamRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	team, appErr := c.TeamService.CreateTeam(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, team, "create team success")
}

// ListTeams handles GET /teams?search=&page=&page_size=
// @Summary List teams
// @Tags Teams
// @Produce json
// @Success 200 {object} dto.PaginatedTeamResponse
// @Router /teams [get]
func (c *TeamController) ListTeams(ctx echo.Context) error {
	var query dto.ListTeamsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &query); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters")
	}
	if err := ctx.Validate(&query); err != nil {
		return c.ValidationFailed(err)
	}

	teams, appErr := c.TeamService.ListTeams(ctx.Request().Context(), query)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, teams, "get teams success")
}

func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	team, appErr := c.TeamService.GetTeam(ctx.Request().Context(), teamID)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, team, "get team success")
}

// AddMembers handles POST /teams/:id/members
// @Summary Add players to a team
// @Tags Teams
// @Accept json
// @Param id path string true "Team ID"
// @Param request body dto.AddMembersRequest true "Players"
// @Router /teams/{id}/members [post]
func (c *TeamController) AddMembers(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	var req dto.AddMembersRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	if appErr := c.TeamService.AddMembers(ctx.Request().Context(), teamID, &req); appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, nil, "add members success")
}

func (c *TeamController) RemoveMember(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}
	userID, ok := c.pathID(ctx, "userId")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	if appErr := c.TeamService.RemoveMember(ctx.Request().Context(), teamID, userID); appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, nil, "remove member success")
}

func (c *TeamController) ListMembers(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	members, appErr := c.TeamService.ListMembers(ctx.Request().Context(), teamID)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, members, "get members success")
}

// AssignToGame handles PUT /teams/:id/games/:gameId
func (c *TeamController) AssignToGame(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}
	gameID, ok := c.pathID(ctx, "gameId")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid game ID")
	}

	if appErr := c.TeamService.AssignToGame(ctx.Request().Context(), teamID, gameID); appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, nil, "team assigned to game")
}

// AssignToSeries handles PUT /teams/:id/series/:seriesId
func (c *TeamController) AssignToSeries(ctx echo.Context) error {
	teamID, ok := c.pathID(ctx, "id")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}
	seriesID, ok := c.pathID(ctx, "seriesId")
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid series ID")
	}

	if appErr := c.TeamService.AssignToSeries(ctx.Request().Context(), teamID, seriesID); appErr != nil {
		return c.AppErrorResponse(appErr)
	}
	return c.SuccessResponse(ctx, nil, "team assigned to series")
}

func (c *TeamController) pathID(ctx echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	return id, err == nil
}
