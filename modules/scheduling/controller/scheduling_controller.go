package controller

import (
	"game-scheduler/core/controller"
	"game-scheduler/core/errors"
	"game-scheduler/modules/scheduling/dto"
	"game-scheduler/modules/scheduling/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SchedulingController handles pattern, conflict and slot HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// CreatePattern handles POST /scheduling/patterns
// @Summary Create a recurring pattern
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param request body dto.CreatePatternRequest true "Pattern"
// @Success 200 {object} dto.PatternResponse
// @Failure 400 {object} errors.AppError
// @Router /scheduling/patterns [post]
func (c *SchedulingController) CreatePattern(ctx echo.Context) error {
	var req dto.CreatePatternRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	result, appErr := c.SchedulingService.CreatePattern(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Pattern created successfully")
}

// GetPattern handles GET /scheduling/patterns/:id
// @Summary Get a recurring pattern
// @Tags Scheduling
// @Produce json
// @Param id path string true "Pattern ID"
// @Success 200 {object} dto.PatternResponse
// @Failure 404 {object} errors.AppError
// @Router /scheduling/patterns/{id} [get]
func (c *SchedulingController) GetPattern(ctx echo.Context) error {
	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid pattern ID")
	}

	result, appErr := c.SchedulingService.GetPattern(ctx.Request().Context(), patternID)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ExpandPattern handles POST /scheduling/patterns/:id/expand
// @Summary Generate games from a pattern
// @Description Creates one game per occurrence in the window. Not idempotent.
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param id path string true "Pattern ID"
// @Param request body dto.ExpandPatternRequest false "Window, defaults to the pattern's dates"
// @Success 200 {object} dto.ExpandPatternResponse
// @Failure 404 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /scheduling/patterns/{id}/expand [post]
func (c *SchedulingController) ExpandPattern(ctx echo.Context) error {
	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid pattern ID")
	}

	var req dto.ExpandPatternRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	result, appErr := c.SchedulingService.ExpandPattern(ctx.Request().Context(), patternID, &req)
	if appErr != nil {
		if result != nil {
			// Games stored before a non-atomic expansion failed.
			return c.AppErrorResponse(appErr, result)
		}
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Pattern expanded")
}

// GetConflicts handles GET /scheduling/games/:id/conflicts
// @Summary Detect conflicts for a game
// @Tags Scheduling
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} dto.ConflictsResponse
// @Router /scheduling/games/{id}/conflicts [get]
func (c *SchedulingController) GetConflicts(ctx echo.Context) error {
	gameID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid game ID")
	}

	result, appErr := c.SchedulingService.DetectConflicts(ctx.Request().Context(), gameID)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// FindOptimalSlot handles POST /scheduling/series/:id/optimal-slot
// @Summary Find the best hourly slot for a series roster
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param id path string true "Series ID"
// @Param request body dto.OptimalSlotRequest true "Search parameters"
// @Success 200 {object} dto.OptimalSlotResponse
// @Failure 400 {object} errors.AppError
// @Router /scheduling/series/{id}/optimal-slot [post]
func (c *SchedulingController) FindOptimalSlot(ctx echo.Context) error {
	seriesID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid series ID")
	}

	var req dto.OptimalSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationFailed(err)
	}

	result, appErr := c.SchedulingService.FindOptimalSlot(ctx.Request().Context(), seriesID, &req)
	if appErr != nil {
		return c.AppErrorResponse(appErr)
	}

	message := "Slot found"
	if !result.Found {
		message = "No slot reaches the minimum player count"
	}
	return c.SuccessResponse(ctx, result, message)
}
