package controller

import (
	"game-scheduler/core/controller"
	"game-scheduler/core/errors"
	"game-scheduler/modules/export/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ExportController struct {
	controller.BaseController
	ExportService service.ExportServiceInterface
}

func NewExportController(svc service.ExportServiceInterface) *ExportController {
	return &ExportController{
		BaseController: controller.NewBaseController(),
		ExportService:  svc,
	}
}

// ExportSeries handles POST /exports/series/:id
// @Summary Queue a spreadsheet export of a series' games
// @Tags Export
// @Produce json
// @Param id path string true "Series ID"
// @Success 202 {object} dto.ExportQueuedResponse
// @Router /exports/series/{id} [post]
func (c *ExportController) ExportSeries(ctx echo.Context) error {
	seriesID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid series ID")
	}

	result, appErr := c.ExportService.RequestSeriesExport(ctx.Request().Context(), seriesID)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.AcceptedResponse(ctx, result, "Export queued")
}
