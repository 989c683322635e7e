package router

import (
	"game-scheduler/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

func NewSchedulingRouter(ctrl *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{SchedulingController: ctrl}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo) {
	routes := e.Group("/api/v1/scheduling")

	routes.POST("/patterns", r.SchedulingController.CreatePattern)
	routes.GET("/patterns/:id", r.SchedulingController.GetPattern)
	routes.POST("/patterns/:id/expand", r.SchedulingController.ExpandPattern)

	routes.GET("/games/:id/conflicts", r.SchedulingController.GetConflicts)

	routes.POST("/series/:id/optimal-slot", r.SchedulingController.FindOptimalSlot)
}
