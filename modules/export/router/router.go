package router

import (
	"game-scheduler/modules/export/controller"

	"github.com/labstack/echo/v4"
)

type ExportRouter struct {
	Controller *controller.ExportController
}

func NewExportRouter(ctrl *controller.ExportController) *ExportRouter {
	return &ExportRouter{Controller: ctrl}
}

func (r *ExportRouter) Setup(e *echo.Echo) {
	routes := e.Group("/api/v1/exports")
	routes.POST("/series/:id", r.Controller.ExportSeries)
}
