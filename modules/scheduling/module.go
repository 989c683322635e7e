package scheduling

import (
	"game-scheduler/core/cache"
	"game-scheduler/core/config"
	"game-scheduler/core/database"
	"game-scheduler/modules/scheduling/controller"
	"game-scheduler/modules/scheduling/repository"
	"game-scheduler/modules/scheduling/router"
	"game-scheduler/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// Init wires the scheduling module and registers its routes. A nil cache
// turns expansion locking off.
func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, cfg config.SchedulingConfig) service.SchedulingServiceInterface {
	svc := NewService(db, c, cfg)
	ctrl := controller.NewSchedulingController(svc)
	router.NewSchedulingRouter(ctrl).Setup(e)
	return svc
}

func NewService(db database.IDatabase, c cache.Cache, cfg config.SchedulingConfig) service.SchedulingServiceInterface {
	repo := repository.NewSchedulingRepository(db)

	var locker service.Locker
	if c != nil {
		locker = c
	}
	return service.NewSchedulingService(repo, locker, cfg)
}
