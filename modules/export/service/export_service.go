package service

import (
	"context"
	"fmt"
	"strings"

	"game-scheduler/core/constants"
	"game-scheduler/core/errors"
	"game-scheduler/core/logger"
	"game-scheduler/core/queue"
	"game-scheduler/core/storage"
	"game-scheduler/core/utils"
	"game-scheduler/modules/export/dto"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SeriesReader looks up a series' pattern and lists its games.
type SeriesReader interface {
	GetPattern(ctx context.Context, id uuid.UUID) (*entity.RecurringPattern, error)
	ListGamesBySeries(ctx context.Context, seriesID uuid.UUID) ([]entity.Game, error)
}

type ExportServiceInterface interface {
	RequestSeriesExport(ctx context.Context, seriesID uuid.UUID) (*dto.ExportQueuedResponse, *errors.AppError)
	ExportSeries(ctx context.Context, seriesID uuid.UUID) (string, error)
}

type ExportService struct {
	series   SeriesReader
	uploader storage.Uploader
	enqueuer queue.Enqueuer
}

func NewExportService(series SeriesReader, uploader storage.Uploader, enqueuer queue.Enqueuer) *ExportService {
	return &ExportService{series: series, uploader: uploader, enqueuer: enqueuer}
}

// RequestSeriesExport queues the export of an existing series and returns
// the task id.
func (s *ExportService) RequestSeriesExport(ctx context.Context, seriesID uuid.UUID) (*dto.ExportQueuedResponse, *errors.AppError) {
	if s.enqueuer == nil {
		return nil, errors.NewAppError(errors.ErrQueueFailed, "Export queue is not configured", nil)
	}

	pattern, err := s.series.GetPattern(ctx, seriesID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get series", err)
	}
	if pattern == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Series not found", nil)
	}

	taskID, err := s.enqueuer.Enqueue(ctx, constants.TaskExportSeries, dto.SeriesExportPayload{SeriesID: seriesID.String()})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrQueueFailed, "Failed to queue export", err)
	}

	return &dto.ExportQueuedResponse{SeriesID: seriesID.String(), TaskID: taskID}, nil
}

// ExportSeries renders every game of the series and uploads the workbook.
func (s *ExportService) ExportSeries(ctx context.Context, seriesID uuid.UUID) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("export storage is not configured")
	}

	games, err := s.series.ListGamesBySeries(ctx, seriesID)
	if err != nil {
		return "", fmt.Errorf("listing games for series %s: %w", seriesID, err)
	}

	body, err := BuildWorkbook(games)
	if err != nil {
		return "", err
	}

	key, err := s.uploader.Upload(ctx, ObjectKey(seriesID, games), constants.ExportContentType, body)
	if err != nil {
		return "", err
	}

	logger.Info("ExportService:ExportSeries", "series_id", seriesID.String(), "games", len(games), "key", key)
	return key, nil
}

// ObjectKey names the upload after the series' pattern name when one is known.
func ObjectKey(seriesID uuid.UUID, games []entity.Game) string {
	base := seriesID.String()
	if len(games) > 0 {
		if s := slug.Make(seriesName(games[0].Name)); s != "" {
			base = s
		}
	}
	return fmt.Sprintf("%s%s-%s.xlsx", constants.ExportKeyPrefix, base, utils.GenerateID())
}

// seriesName strips the trailing " - <date>" that expansion appends.
func seriesName(gameName string) string {
	if i := strings.LastIndex(gameName, " - "); i > 0 {
		return gameName[:i]
	}
	return gameName
}
