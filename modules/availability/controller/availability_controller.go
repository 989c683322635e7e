package controller

import (
	"game-scheduler/core/controller"
	"game-scheduler/core/errors"
	"game-scheduler/modules/availability/dto"
	"game-scheduler/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// Upsert handles PUT /availability
// @Summary Set a player's availability for a slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.UpsertAvailabilityRequest true "Availability"
// @Success 200 {object} dto.AvailabilityResponse
// @Router /availability [put]
func (c *AvailabilityController) Upsert(ctx echo.Context) error {
	var req dto.UpsertAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	result, appErr := c.AvailabilityService.Upsert(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability saved")
}

// ListForDate handles GET /availability/users/:userId?date=YYYY-MM-DD
// @Summary List a player's availability for a date
// @Tags Availability
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.AvailabilityResponse
// @Router /availability/users/{userId} [get]
func (c *AvailabilityController) ListForDate(ctx echo.Context) error {
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.AvailabilityService.ListForDate(ctx.Request().Context(), userID, ctx.QueryParam("date"))
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
