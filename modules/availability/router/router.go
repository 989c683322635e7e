package router

import (
	"game-scheduler/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	Controller *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{Controller: ctrl}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo) {
	routes := e.Group("/api/v1/availability")
	routes.PUT("", r.Controller.Upsert)
	routes.GET("/users/:userId", r.Controller.ListForDate)
}
