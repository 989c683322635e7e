package router

import (
	"game-scheduler/modules/team/controller"

	"github.com/labstack/echo/v4"
)

type TeamRouter struct {
	Controller *controller.TeamController
}

func NewTeamRouter(ctrl *controller.TeamController) *TeamRouter {
	return &TeamRouter{Controller: ctrl}
}

func (r *TeamRouter) Setup(e *echo.Echo) {
	teams := e.Group("/api/v1/teams")
	teams.POST("", r.Controller.CreateTeam)
	teams.GET("", r.Controller.ListTeams)
	teams.GET("/:id", r.Controller.GetTeam)

	teams.GET("/:id/members", r.Controller.ListMembers)
	teams.POST("/:id/members", r.Controller.AddMembers)
	teams.DELETE("/:id/members/:userId", r.Controller.RemoveMember)

	teams.PUT("/:id/games/:gameId", r.Controller.AssignToGame)
	teams.PUT("/:id/series/:seriesId", r.Controller.AssignToSeries)
}
