package team

import (
	"game-scheduler/core/database"
	"game-scheduler/modules/team/controller"
	"game-scheduler/modules/team/repository"
	"game-scheduler/modules/team/router"
	"game-scheduler/modules/team/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase) {
	repo := repository.NewTeamRepository(db)
	svc := service.NewTeamService(repo)
	ctrl := controller.NewTeamController(svc)

	router.NewTeamRouter(ctrl).Setup(e)
}
