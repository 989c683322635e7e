package availability

import (
	"game-scheduler/core/database"
	"game-scheduler/modules/availability/controller"
	"game-scheduler/modules/availability/repository"
	"game-scheduler/modules/availability/router"
	"game-scheduler/modules/availability/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Querier) {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Setup(e)
}
